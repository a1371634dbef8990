package password_test

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sipahq/sipa-api/pkg/password"
)

func containsAny(s, chars string) bool {
	return strings.ContainsAny(s, chars)
}

// Caso 1: La contraseña siempre tiene 12 caracteres y al menos uno de cada clase.
func TestGenerateTemporary_ClasesGarantizadas(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 500; i++ {
		pw := password.GenerateTemporary(rng)
		require.Len(t, pw, password.Length)
		assert.True(t, containsAny(pw, "ABCDEFGHIJKLMNOPQRSTUVWXYZ"), "debe contener mayúscula: %q", pw)
		assert.True(t, containsAny(pw, "abcdefghijklmnopqrstuvwxyz"), "debe contener minúscula: %q", pw)
		assert.True(t, containsAny(pw, "0123456789"), "debe contener dígito: %q", pw)
		assert.True(t, containsAny(pw, "!@#$%^&*"), "debe contener símbolo: %q", pw)
	}
}

// Caso 2: Con la misma semilla la secuencia es reproducible (fuente inyectada).
func TestGenerateTemporary_Determinista(t *testing.T) {
	a := password.GenerateTemporary(rand.New(rand.NewSource(42)))
	b := password.GenerateTemporary(rand.New(rand.NewSource(42)))
	assert.Equal(t, a, b)
}

// Caso 3: Semillas distintas producen contraseñas distintas (no hay estado global).
func TestGenerateTemporary_SemillasDistintas(t *testing.T) {
	a := password.GenerateTemporary(rand.New(rand.NewSource(1)))
	b := password.GenerateTemporary(rand.New(rand.NewSource(2)))
	assert.NotEqual(t, a, b)
}

// Caso 4: Los caracteres garantizados no quedan fijos en las primeras posiciones.
// Con suficientes muestras, la primera posición debe variar de clase.
func TestGenerateTemporary_OrdenBarajado(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	firstIsUpper := 0
	const samples = 200
	for i := 0; i < samples; i++ {
		pw := password.GenerateTemporary(rng)
		if pw[0] >= 'A' && pw[0] <= 'Z' {
			firstIsUpper++
		}
	}
	// Si el orden fuera posicional, la primera posición sería siempre mayúscula.
	assert.Less(t, firstIsUpper, samples)
}
