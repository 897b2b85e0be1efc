package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

var (
	NanoidSize     = 32
	nanoidAlphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

	// file names end up in URLs and on case-insensitive filesystems
	fileTokenAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
)

func NanoID() string {
	return NanoIDSize(NanoidSize)
}

func NanoIDSize(size int) string {
	if size == 0 {
		size = NanoidSize
	}

	return gonanoid.MustGenerate(nanoidAlphabet, size)
}

func FileToken() string {
	return gonanoid.MustGenerate(fileTokenAlphabet, 10)
}
