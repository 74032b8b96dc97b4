package core

import (
	"fmt"
	"hash/fnv"
)

func HashContent(content []byte) string {
	h := fnv.New64a()
	h.Write(content)
	return fmt.Sprintf("%016x", h.Sum64())
}
