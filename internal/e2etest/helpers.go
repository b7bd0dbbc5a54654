package e2etest

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// FindLabel finds the label in form whose trimmed text equals labelText.
// Labels wrapping an input are matched on their own text, ignoring the input.
func FindLabel(form *goquery.Selection, labelText string) (*goquery.Selection, error) {
	label := form.Find("label").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return strings.TrimSpace(s.Text()) == labelText
	}).First()
	if label.Length() == 0 {
		return nil, fmt.Errorf("label not found: %s", labelText)
	}
	return label, nil
}

// FindInputForLabel finds the form control labelled with labelText.
// The control is either referenced with the label's for attribute or nested in the label.
func FindInputForLabel(form *goquery.Selection, labelText string) (*goquery.Selection, error) {
	label, err := FindLabel(form, labelText)
	if err != nil {
		return nil, err
	}
	var input *goquery.Selection
	if id, exists := label.Attr("for"); exists {
		input = form.Find(fmt.Sprintf("input#%[1]s,select#%[1]s,textarea#%[1]s", id))
	} else {
		input = label.Find("input,select,textarea")
	}
	if input.Length() == 0 {
		return nil, fmt.Errorf("input not found for label: %s", labelText)
	}
	return input.First(), nil
}

// FindForm finds a form in the doc identified with action formActionUrlPath and returns the form selection.
func FindForm(doc *goquery.Document, formActionURLPath string) (*goquery.Selection, error) {
	form := doc.Find(fmt.Sprintf("form[action='%s']", formActionURLPath))
	if form.Length() == 0 {
		return nil, fmt.Errorf("form not found: %s", formActionURLPath)
	}
	return form, nil
}
