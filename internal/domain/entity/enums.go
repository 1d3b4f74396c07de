package entity

var Specializations = []string{
	"general-physician", "cardiology", "dermatology", "pediatrics",
	"orthopedics", "gynecology", "neurology", "psychiatry", "ent",
	"ophthalmology", "dentistry", "gastroenterology", "pulmonology",
	"endocrinology", "urology", "oncology",
}

var Weekdays = []string{
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
}

var LabTestCategories = []string{
	"blood-test", "urine-test", "imaging", "cardiac", "diabetes", "thyroid",
	"liver", "kidney", "lipid", "vitamin", "hormone", "infection", "allergy",
	"cancer-screening", "full-body-checkup",
}

var MedicineCategories = []string{
	"tablet", "capsule", "syrup", "injection", "ointment", "drops",
	"inhaler", "powder", "other",
}

// ValidationEnums maps the custom enum validation tags used on entity
// fields to their accepted values.
func ValidationEnums() map[string][]string {
	return map[string][]string{
		"specialization": Specializations,
		"weekday":        Weekdays,
		"labcategory":    LabTestCategories,
		"medcategory":    MedicineCategories,
	}
}
