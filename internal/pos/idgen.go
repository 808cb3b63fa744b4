package pos

import (
	"math/rand"
	"strings"
)

const (
	idAlphabet      = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	DefaultIDLength = 6
)

func newOrderID(length int) string {
	var b strings.Builder
	b.Grow(length)
	for i := 0; i < length; i++ {
		b.WriteByte(idAlphabet[rand.Intn(len(idAlphabet))])
	}
	return b.String()
}
