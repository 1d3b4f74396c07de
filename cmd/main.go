// Command mediquick-api serves the telemedicine and lab test REST API and
// runs the background jobs.
package main

import (
	"mediquick-api/cmd/bootstrap"

	"github.com/sirupsen/logrus"
)

func main() {
	app, err := bootstrap.New()
	if err != nil {
		logrus.WithError(err).Fatal("MediQuick API failed to start")
	}

	app.Run()
}
