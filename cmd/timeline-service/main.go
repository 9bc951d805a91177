package main

import (
	"os"

	"github.com/rs/zerolog/log"

	"github.com/talyssonoliver/IntelliFlow-CRM-sub004/timelineservice"
)

func main() {
	if err := timelineservice.Run(); err != nil {
		log.Error().Err(err).Msg("timeline-service exited with error")
		os.Exit(1)
	}
}
