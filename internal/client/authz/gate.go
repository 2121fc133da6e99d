// Package authz decide qué puede ver el usuario según su sesión. Es lógica
// pura: no toca red ni disco, solo traduce (sesión, tipo de ruta) a un veredicto.
package authz

// TipoRuta clasifica las pantallas del cliente.
type TipoRuta int

const (
	// RutaPublica pantallas de login/registro: solo tienen sentido sin sesión.
	RutaPublica TipoRuta = iota
	// RutaProtegida pantallas de trabajo: exigen sesión activa.
	RutaProtegida
)

// Decision veredicto del gate para una ruta.
type Decision int

const (
	// Cargando la sesión aún se está restaurando: no decidir todavía.
	Cargando Decision = iota
	// Renderizar la ruta se muestra tal cual.
	Renderizar
	// RedirigirLogin sesión ausente en ruta protegida.
	RedirigirLogin
	// RedirigirDashboard sesión activa en ruta pública.
	RedirigirDashboard
)

// Decidir aplica la tabla de autorización del cliente.
//
// Mientras la sesión carga nunca se redirige: redirigir con el estado a
// medio restaurar expulsaría a usuarios con sesión válida en disco.
func Decidir(autenticado, cargando bool, ruta TipoRuta) Decision {
	if cargando {
		return Cargando
	}
	switch ruta {
	case RutaProtegida:
		if !autenticado {
			return RedirigirLogin
		}
	case RutaPublica:
		if autenticado {
			return RedirigirDashboard
		}
	}
	return Renderizar
}
