package config

import "os"

func IsDebug() bool {
	return os.Getenv("COVBOT_DEBUG") == "1"
}
