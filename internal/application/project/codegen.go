package project

import "math/rand"

// Alfabeto sin caracteres ambiguos (0/O, 1/I) para códigos legibles por humanos.
const (
	codePrefix   = "PRY-"
	codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	codeLength   = 8

	// maxCodeAttempts tope del reintento de generación: superarlo indica un
	// espacio de códigos agotado o datos de existencia inconsistentes en el store.
	maxCodeAttempts = 10
)

// GenerateCode produce un candidato de código de proyecto (ej. "PRY-7KQ2WN9X").
// La unicidad se verifica contra el store; la fuente de aleatoriedad se inyecta
// para que los tests sean deterministas.
func GenerateCode(rng *rand.Rand) string {
	buf := make([]byte, codeLength)
	for i := range buf {
		buf[i] = codeAlphabet[rng.Intn(len(codeAlphabet))]
	}
	return codePrefix + string(buf)
}
