package service

import (
	"mediquick-api/internal/domain/entity"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

func weekdaySlots(start, end string) []entity.DaySlot {
	slots := make([]entity.DaySlot, 0, len(entity.Weekdays))
	for _, day := range entity.Weekdays {
		available := day != "sunday"
		slots = append(slots, entity.DaySlot{Day: day, StartTime: start, EndTime: end, Available: available})
	}
	return slots
}

func rangeOf(lo, hi float64) entity.NormalRange {
	return entity.NormalRange{Min: &lo, Max: &hi}
}

// DoctorFixtures returns the demo doctor roster.
func DoctorFixtures() []entity.Doctor {
	return []entity.Doctor{
		{
			Name:            "Dr. Ananya Rao",
			Email:           "ananya.rao@mediquick.test",
			Phone:           "+919876543210",
			Specialization:  "cardiology",
			Qualifications:  pq.StringArray{"MBBS", "MD", "DM Cardiology"},
			ExperienceYears: 14,
			ConsultationFee: decimal.NewFromInt(900),
			Languages:       pq.StringArray{"English", "Hindi", "Telugu"},
			Bio:             "Interventional cardiologist focused on preventive heart care.",
			Availability:    weekdaySlots("09:00", "17:00"),
			IsActive:        true,
		},
		{
			Name:            "Dr. Rahul Mehta",
			Email:           "rahul.mehta@mediquick.test",
			Phone:           "+919812345678",
			Specialization:  "general-physician",
			Qualifications:  pq.StringArray{"MBBS"},
			ExperienceYears: 6,
			ConsultationFee: decimal.NewFromInt(400),
			Languages:       pq.StringArray{"English", "Hindi", "Gujarati"},
			Availability:    weekdaySlots("08:00", "20:00"),
			IsActive:        true,
		},
		{
			Name:            "Dr. Priya Nair",
			Email:           "priya.nair@mediquick.test",
			Phone:           "+919845012345",
			Specialization:  "dermatology",
			Qualifications:  pq.StringArray{"MBBS", "MD Dermatology"},
			ExperienceYears: 9,
			ConsultationFee: decimal.NewFromInt(700),
			Languages:       pq.StringArray{"English", "Malayalam"},
			Availability:    weekdaySlots("10:00", "18:00"),
			IsActive:        true,
		},
		{
			Name:            "Dr. Sameer Khan",
			Email:           "sameer.khan@mediquick.test",
			Phone:           "+919900112233",
			Specialization:  "pediatrics",
			Qualifications:  pq.StringArray{"MBBS", "DCH"},
			ExperienceYears: 11,
			ConsultationFee: decimal.NewFromInt(600),
			Languages:       pq.StringArray{"English", "Hindi", "Urdu"},
			Availability:    weekdaySlots("09:30", "15:30"),
			IsActive:        true,
		},
		{
			Name:            "Dr. Kavya Iyer",
			Email:           "kavya.iyer@mediquick.test",
			Phone:           "+919876001122",
			Specialization:  "psychiatry",
			Qualifications:  pq.StringArray{"MBBS", "MD Psychiatry"},
			ExperienceYears: 8,
			ConsultationFee: decimal.NewFromInt(1000),
			Languages:       pq.StringArray{"English", "Tamil"},
			Availability:    weekdaySlots("12:00", "21:00"),
			IsActive:        true,
		},
	}
}

// LabTestFixtures returns the demo lab test catalogue.
func LabTestFixtures() []entity.LabTest {
	return []entity.LabTest{
		{
			Name:         "Complete Blood Count",
			Code:         "CBC",
			Category:     "blood-test",
			Description:  "Measures red cells, white cells, hemoglobin and platelets.",
			Tags:         pq.StringArray{"cbc", "hemoglobin", "anemia"},
			MRP:          decimal.NewFromInt(500),
			SellingPrice: decimal.NewFromInt(299),
			SampleTypes:  pq.StringArray{"blood"},
			ReportValue:  12,
			ReportUnit:   "hours",
			HomeCollection: entity.HomeCollection{
				Available: true, Charge: decimal.NewFromInt(50), FreeAbove: decimal.NewFromInt(500),
			},
			Parameters: []entity.TestParameter{
				{Name: "Hemoglobin", Unit: "g/dL", NormalRange: rangeOf(12, 17)},
				{Name: "Platelet Count", Unit: "10^3/uL", NormalRange: rangeOf(150, 450)},
			},
			OrderCount: 50,
			IsPopular:  true,
			IsActive:   true,
		},
		{
			Name:         "Lipid Profile",
			Code:         "LIPID",
			Category:     "lipid",
			Description:  "Cholesterol and triglyceride panel.",
			Tags:         pq.StringArray{"cholesterol", "heart"},
			MRP:          decimal.NewFromInt(900),
			SellingPrice: decimal.NewFromInt(599),
			SampleTypes:  pq.StringArray{"blood"},
			FastingHours: 12,
			ReportValue:  1,
			ReportUnit:   "days",
			HomeCollection: entity.HomeCollection{
				Available: true, Charge: decimal.NewFromInt(50), FreeAbove: decimal.NewFromInt(500),
			},
			Parameters: []entity.TestParameter{
				{Name: "Total Cholesterol", Unit: "mg/dL", NormalRange: entity.NormalRange{Text: "< 200"}},
				{Name: "HDL", Unit: "mg/dL", NormalRange: rangeOf(40, 60)},
			},
			OrderCount: 30,
			IsPopular:  true,
			IsFeatured: true,
			IsActive:   true,
		},
		{
			Name:         "Thyroid Profile (T3, T4, TSH)",
			Code:         "THY-3",
			Category:     "thyroid",
			Tags:         pq.StringArray{"tsh", "thyroid"},
			MRP:          decimal.NewFromInt(800),
			SellingPrice: decimal.NewFromInt(449),
			SampleTypes:  pq.StringArray{"blood"},
			ReportValue:  1,
			ReportUnit:   "days",
			Parameters: []entity.TestParameter{
				{Name: "TSH", Unit: "uIU/mL", NormalRange: rangeOf(0.4, 4.0)},
			},
			OrderCount: 20,
			IsPopular:  true,
			IsActive:   true,
		},
		{
			Name:         "HbA1c",
			Code:         "HBA1C",
			Category:     "diabetes",
			Tags:         pq.StringArray{"sugar", "glycated hemoglobin"},
			MRP:          decimal.NewFromInt(600),
			SellingPrice: decimal.NewFromInt(399),
			SampleTypes:  pq.StringArray{"blood"},
			ReportValue:  1,
			ReportUnit:   "days",
			OrderCount:   10,
			IsPopular:    true,
			IsFeatured:   true,
			IsActive:     true,
		},
		{
			Name:         "Urine Routine",
			Code:         "URINE-R",
			Category:     "urine-test",
			Tags:         pq.StringArray{"urine", "infection"},
			MRP:          decimal.NewFromInt(300),
			SellingPrice: decimal.NewFromInt(199),
			SampleTypes:  pq.StringArray{"urine"},
			ReportValue:  8,
			ReportUnit:   "hours",
			OrderCount:   5,
			IsActive:     true,
		},
		{
			Name:         "Vitamin D (25-OH)",
			Code:         "VITD",
			Category:     "vitamin",
			Tags:         pq.StringArray{"vitamin d", "bone"},
			MRP:          decimal.NewFromInt(1500),
			SellingPrice: decimal.NewFromInt(999),
			SampleTypes:  pq.StringArray{"blood"},
			ReportValue:  2,
			ReportUnit:   "days",
			IsFeatured:   true,
			IsActive:     true,
		},
		{
			Name:         "Full Body Checkup",
			Code:         "FBC-PLUS",
			Category:     "full-body-checkup",
			Tags:         pq.StringArray{"health package", "annual"},
			MRP:          decimal.NewFromInt(5000),
			SellingPrice: decimal.NewFromInt(2499),
			SampleTypes:  pq.StringArray{"blood", "urine"},
			FastingHours: 10,
			ReportValue:  2,
			ReportUnit:   "days",
			HomeCollection: entity.HomeCollection{
				Available: true, Charge: decimal.Zero,
			},
			AgeMin:     18,
			AgeMax:     80,
			IsFeatured: true,
			IsActive:   true,
		},
		{
			Name:         "Chest X-Ray",
			Code:         "XRAY-CH",
			Category:     "imaging",
			Tags:         pq.StringArray{"xray", "lungs"},
			MRP:          decimal.NewFromInt(700),
			SellingPrice: decimal.NewFromInt(700),
			SampleTypes:  pq.StringArray{"other"},
			ReportValue:  1,
			ReportUnit:   "weeks",
			IsActive:     true,
		},
	}
}

// MedicineFixtures returns the demo pharmacy catalogue.
func MedicineFixtures() []entity.Medicine {
	return []entity.Medicine{
		{
			Name: "Paracetamol 500mg", GenericName: "Paracetamol", Manufacturer: "Generic Labs",
			Category: "tablet", Dosage: "500mg", PackSize: "Strip of 15",
			MRP: decimal.NewFromInt(40), SellingPrice: decimal.NewFromInt(30), Stock: 500, IsActive: true,
		},
		{
			Name: "Amoxicillin 250mg", GenericName: "Amoxicillin", Manufacturer: "Cipla",
			Category: "capsule", Dosage: "250mg", PackSize: "Strip of 10",
			MRP: decimal.NewFromInt(120), SellingPrice: decimal.NewFromInt(96), Stock: 200,
			RequiresPrescription: true, IsActive: true,
		},
		{
			Name: "Cough Syrup 100ml", GenericName: "Dextromethorphan", Manufacturer: "Dabur",
			Category: "syrup", PackSize: "100ml bottle",
			MRP: decimal.NewFromInt(110), SellingPrice: decimal.NewFromInt(99), Stock: 150, IsActive: true,
		},
		{
			Name: "Insulin Glargine", GenericName: "Insulin Glargine", Manufacturer: "Sanofi",
			Category: "injection", Dosage: "100 IU/ml", PackSize: "3ml cartridge",
			MRP: decimal.NewFromInt(850), SellingPrice: decimal.NewFromInt(765), Stock: 40,
			RequiresPrescription: true, IsActive: true,
		},
		{
			Name: "Clotrimazole Cream", GenericName: "Clotrimazole", Manufacturer: "Glenmark",
			Category: "ointment", PackSize: "20g tube",
			MRP: decimal.NewFromInt(95), SellingPrice: decimal.NewFromInt(85), Stock: 80, IsActive: true,
		},
		{
			Name: "Salbutamol Inhaler", GenericName: "Salbutamol", Manufacturer: "Cipla",
			Category: "inhaler", Dosage: "100mcg", PackSize: "200 doses",
			MRP: decimal.NewFromInt(180), SellingPrice: decimal.NewFromInt(162), Stock: 60,
			RequiresPrescription: true, IsActive: true,
		},
		{
			Name: "Moisturising Eye Drops", GenericName: "Carboxymethylcellulose", Manufacturer: "Allergan",
			Category: "drops", PackSize: "10ml",
			MRP: decimal.NewFromInt(210), SellingPrice: decimal.NewFromInt(189), Stock: 90, IsActive: true,
		},
	}
}
