package domain

import (
	"sort"
	"strings"
)

// ValidationErrors acumula violaciones de validación por campo o sección.
// La llave es la ruta del campo ("period_end", "actividades", "resultados[1].indicator")
// y el valor el mensaje para esa llave. Los formularios del cliente pintan un
// mensaje por llave, así que la forma se conserva hasta la respuesta HTTP.
type ValidationErrors map[string]string

// Add registra una violación. La primera violación de una llave gana.
func (v ValidationErrors) Add(key, message string) {
	if _, ok := v[key]; !ok {
		v[key] = message
	}
}

// AsError devuelve el mapa como error si contiene alguna violación, o nil.
func (v ValidationErrors) AsError() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

// Error implementa error. Llaves ordenadas para mensajes deterministas.
func (v ValidationErrors) Error() string {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	b.WriteString("validación fallida: ")
	for i, k := range keys {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(k + ": " + v[k])
	}
	return b.String()
}
