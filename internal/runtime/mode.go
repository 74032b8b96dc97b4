package runtime

import (
	"os"
)

type Mode int

const (
	ModeDev Mode = iota
	ModeProd
)

const DevEnv = "VIEWPACK_DEV"

func (m Mode) String() string {
	if m == ModeDev {
		return "dev"
	}
	return "prod"
}

func GetMode() Mode {
	if os.Getenv(DevEnv) == "1" {
		return ModeDev
	}
	return ModeProd
}

func IsDev() bool {
	return GetMode() == ModeDev
}
