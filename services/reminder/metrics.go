package reminder

import (
	"time"

	"apptreminders/utils"
)

func observe(handler string, start time.Time, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	utils.HandlerDuration.WithLabelValues(handler, outcome).Observe(time.Since(start).Seconds())
}
