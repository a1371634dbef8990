// Package password genera contraseñas temporales para usuarios creados por el
// sistema (aprovisionamiento de equipo, restablecimiento de contraseña).
package password

import "math/rand"

const (
	uppercase = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	lowercase = "abcdefghijklmnopqrstuvwxyz"
	digits    = "0123456789"
	symbols   = "!@#$%^&*"
	allChars  = uppercase + lowercase + digits + symbols

	// Length longitud fija de las contraseñas temporales.
	Length = 12
)

// GenerateTemporary genera una contraseña de 12 caracteres que garantiza al
// menos una mayúscula, una minúscula, un dígito y un símbolo. Los caracteres
// restantes se toman uniformemente del conjunto completo y el orden final se
// baraja para que los caracteres garantizados no queden en posiciones fijas.
// La fuente de aleatoriedad se inyecta para que los tests sean deterministas.
func GenerateTemporary(rng *rand.Rand) string {
	buf := make([]byte, 0, Length)
	buf = append(buf,
		uppercase[rng.Intn(len(uppercase))],
		lowercase[rng.Intn(len(lowercase))],
		digits[rng.Intn(len(digits))],
		symbols[rng.Intn(len(symbols))],
	)
	for len(buf) < Length {
		buf = append(buf, allChars[rng.Intn(len(allChars))])
	}
	rng.Shuffle(len(buf), func(i, j int) {
		buf[i], buf[j] = buf[j], buf[i]
	})
	return string(buf)
}
