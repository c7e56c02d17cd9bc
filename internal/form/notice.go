package form

import (
	"errors"

	"github.com/taxtracker/taxtracker/internal/totals"
)

// Notice is the content of a modal dialog.
type Notice struct {
	Title string
	Body  string
}

// NoticeFor maps an AddTransaction error to the dialog shown to the user.
func NoticeFor(err error) Notice {
	switch {
	case errors.Is(err, ErrMissingInput):
		return Notice{Title: "Missing Information", Body: "Please enter both description and amount."}
	case errors.Is(err, ErrInvalidAmount):
		return Notice{Title: "Invalid Input", Body: "Amount must be a valid number."}
	default:
		return Notice{Title: "Error", Body: err.Error()}
	}
}

// TotalsNotice builds the dialog for a totals report.
func TotalsNotice(t totals.Totals) Notice {
	return Notice{Title: "Totals", Body: t.Report()}
}
