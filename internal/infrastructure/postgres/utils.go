package postgres

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// isForeignKeyViolation verifica si un error es una violación de FK (23503),
// por ejemplo el ON DELETE RESTRICT de reporte_seguimientos.
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503" // foreign_key_violation
	}
	return strings.Contains(err.Error(), "23503")
}

// validUUID indica si s tiene formato UUID. Las PKs son columnas uuid: un id
// malformado no puede existir, y mandarlo como parámetro haría fallar el bind
// en el servidor en lugar de responder "no encontrado".
func validUUID(s string) bool {
	return uuid.Validate(s) == nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike escapa los metacaracteres de LIKE/ILIKE para que un % o _
// literal en el texto buscado no actúe como comodín. Usar junto a ESCAPE '\'.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
