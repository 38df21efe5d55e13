package certificates

import (
	"fmt"
	"strings"

	"github.com/corvalle/certilab/internal/contracts"
	"github.com/corvalle/certilab/pkg/spanish"
)

// BuildPayload turns one aggregated contract group into the render-ready
// certificate content. It is a pure function: identical inputs, including
// the evaluation date carried by ctx, produce byte-identical text.
//
// Salary precedence: a supplied override always wins; titles in the
// manual-salary set require one while the group is active; otherwise the
// group's tracked salary is used, and an absent salary omits the salary
// clause entirely.
func BuildPayload(group contracts.Group, override *int64, ctx Context) (Payload, error) {
	salary := override
	if salary == nil {
		if group.Active && ctx.RequiresManualSalary(group.LatestTitle) {
			return Payload{}, fmt.Errorf("%w: %s", ErrMissingSalary, group.LatestTitle)
		}
		salary = group.Salary
	}

	employee := employeeName(group)
	identity := identityNumber(group)

	return Payload{
		Entity:         group.Entity,
		EmployeeName:   employee,
		IdentityNumber: identity,
		LatestTitle:    group.LatestTitle,
		Active:         group.Active,
		Narrative:      narrative(group, employee, identity, salary),
		Issued: fmt.Sprintf(
			"Se expide en %s, a los %d días del mes de %s de %d.",
			ctx.City, ctx.EvalDate.Day(), spanish.Month(ctx.EvalDate.Month()), ctx.EvalDate.Year(),
		),
		Filename: filename(group, identity),
	}, nil
}

func narrative(group contracts.Group, employee, identity string, salary *int64) string {
	var b strings.Builder

	verb := "laboró"
	if group.Active {
		verb = "labora"
	}

	fmt.Fprintf(&b,
		"Que el(la) señor(a) %s, identificado(a) con cédula de ciudadanía No. %s, %s en %s, NIT %s, desempeñando el cargo de %s, desde el %s",
		employee, identity, verb,
		strings.ToUpper(group.Entity.Name), group.Entity.NIT,
		strings.ToUpper(group.LatestTitle),
		spanish.FormatDate(group.EarliestStart),
	)

	if group.LatestEnd == nil {
		b.WriteString(" hasta la fecha")
	} else {
		fmt.Fprintf(&b, " hasta el %s", spanish.FormatDate(*group.LatestEnd))
	}

	if salary != nil {
		fmt.Fprintf(&b,
			", con una asignación mensual de %s (%s)",
			spanish.AmountInWords(*salary), spanish.FormatPesos(*salary),
		)
	}

	b.WriteString(".")
	return b.String()
}

func filename(group contracts.Group, identity string) string {
	entity := strings.Join(strings.Fields(group.Entity.Name), "_")
	return fmt.Sprintf("Certificado_Laboral_%s_%s.pdf", entity, identity)
}

// employeeName and identityNumber come from the chronologically last record,
// which reflects the most recent spelling in the sheet.
func employeeName(group contracts.Group) string {
	return group.Records[len(group.Records)-1].EmployeeName
}

func identityNumber(group contracts.Group) string {
	return group.Records[len(group.Records)-1].IdentityNumber
}
