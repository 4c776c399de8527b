package repository

import (
	"context"
	"strings"

	"debtster-collections/internal/domain"
)

// accentedRunes and plainRunes are paired rune by rune for translate(); the
// result agrees with domain.Fold for every rune listed.
const (
	accentedRunes = "ÁÀÂÄÃÅáàâäãåÉÈÊËéèêëÍÌÎÏíìîïÓÒÔÖÕóòôöõÚÙÛÜúùûüÑñÇç"
	plainRunes    = "AAAAAAaaaaaaEEEEeeeeIIIIiiiiOOOOOoooooUUUUuuuuNnCc"
)

func foldColumn(col string) string {
	return "lower(translate(" + col + ", '" + accentedRunes + "', '" + plainRunes + "'))"
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern turns a folded query into a LIKE pattern matching it anywhere.
func containsPattern(folded string) string {
	return "%" + likeEscaper.Replace(folded) + "%"
}

var debtorSearchQuery = `SELECT ` + debtorColumns + ` FROM debtors
	WHERE ` + foldColumn("name") + ` LIKE $1 ESCAPE '\'
		OR ` + foldColumn("tax_id") + ` LIKE $1 ESCAPE '\'
	ORDER BY name, id`

// Search returns debtors whose name or tax id contains folded, which must
// already be lower-cased and stripped of accents.
func (r *DebtorRepository) Search(ctx context.Context, folded string) ([]domain.Debtor, error) {
	return r.query(ctx, "failed to search debtors", debtorSearchQuery, containsPattern(folded))
}

var instrumentSearchQuery = instrumentSelect + `
	WHERE ` + foldColumn("i.number") + ` LIKE $1 ESCAPE '\'
		OR ` + foldColumn("i.type") + ` LIKE $1 ESCAPE '\'
		OR ` + foldColumn("COALESCE(d.name, '')") + ` LIKE $1 ESCAPE '\'
	ORDER BY i.due_date, i.id`

// Search returns instruments whose number, type or debtor name contains folded.
func (r *InstrumentRepository) Search(ctx context.Context, folded string) ([]domain.Instrument, error) {
	return r.query(ctx, "failed to search instruments", instrumentSearchQuery, containsPattern(folded))
}
