package config

import "os"

func IsDebug() bool {
	return os.Getenv("MEMO_DEBUG") == "1"
}
