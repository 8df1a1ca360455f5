package httpapi

import (
	"net/http"
	"strings"
	"unicode"

	"browserbase-agent/internal/application/port/output"
	"browserbase-agent/internal/domain/entity"
)

const defaultFormURL = "https://file.1040.com/estimate/"

// formKeywords сопоставляет описание поля ключу из formSampleInputs.
// Порядок важен: проверяется первое совпадение.
var formKeywords = []struct {
	key   string
	terms []string
}{
	{"age", []string{"old", "age"}},
	{"dependentsUnder17", []string{"under age 17", "child", "minor"}},
	{"dependents17to23", []string{"17-23", "school", "student"}},
	{"wages", []string{"wages", "w-2 box 1", "salary", "income"}},
	{"federalTax", []string{"federal tax", "box 2"}},
	{"stateTax", []string{"state tax", "box 17"}},
	{"name", []string{"name", "full name"}},
	{"email", []string{"email", "e-mail"}},
	{"phone", []string{"phone", "telephone", "mobile"}},
	{"address", []string{"address", "street"}},
	{"city", []string{"city", "town"}},
	{"state", []string{"state", "province"}},
	{"zip", []string{"zip", "postal", "zipcode"}},
}

var formSampleInputs = map[string]string{
	"age":               "26",
	"dependentsUnder17": "1",
	"dependents17to23":  "0",
	"wages":             "54321",
	"federalTax":        "8345",
	"stateTax":          "2222",
	"name":              "John Doe",
	"email":             "john.doe@example.com",
	"phone":             "555-123-4567",
	"address":           "123 Main St",
	"city":              "Anytown",
	"state":             "CA",
	"zip":               "12345",
}

func mapFormField(description string) (string, bool) {
	d := " " + normalizeWords(description) + " "
	for _, kw := range formKeywords {
		for _, term := range kw.terms {
			if strings.Contains(d, " "+normalizeWords(term)+" ") {
				return kw.key, true
			}
		}
	}
	return "", false
}

// normalizeWords разбивает текст на слова в нижнем регистре: camelCase,
// "_", "-" и пунктуация становятся границами, так что "homepage" не даёт "age".
func normalizeWords(s string) string {
	var sb strings.Builder
	prevLower := false
	for _, r := range s {
		switch {
		case unicode.IsUpper(r):
			if prevLower {
				sb.WriteByte(' ')
			}
			sb.WriteRune(unicode.ToLower(r))
			prevLower = false
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			sb.WriteRune(r)
			prevLower = true
		default:
			sb.WriteByte(' ')
			prevLower = false
		}
	}
	return strings.Join(strings.Fields(sb.String()), " ")
}

// fieldDescription собирает подпись поля из того, что видит пользователь
// и что задаёт разметка. CSS-селектор в подпись не входит.
func fieldDescription(el entity.UIElement) string {
	var parts []string
	for _, p := range []string{el.Label, el.AriaLabel, el.Placeholder, el.Name} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

type formField struct {
	Name  string  `json:"name"`
	Value *string `json:"value"`
}

type formResponse struct {
	URL    string      `json:"url"`
	Fields []formField `json:"fields"`
	Count  int         `json:"count"`
}

// Form заполняет видимые поля ввода тестовыми данными по ключевым словам
// в label, aria-label, placeholder и name. Поля без совпадения остаются пустыми и возвращаются с value=null.
func (h *Handler) Form(w http.ResponseWriter, r *http.Request) {
	url := r.URL.Query().Get("url")
	if url == "" {
		url = defaultFormURL
	}
	if err := entity.ValidateURL(url); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid URL", err)
		return
	}

	resp := formResponse{URL: url, Fields: []formField{}}
	err := h.withPage(r.Context(), url, func(b output.BrowserPort) error {
		elements, err := b.GetUIElements(r.Context())
		if err != nil {
			return err
		}
		for _, el := range elements {
			if el.Type != "input" {
				continue
			}
			description := fieldDescription(el)
			field := formField{Name: description}
			if description == "" {
				field.Name = el.Selector
			}
			if key, ok := mapFormField(description); ok {
				value := formSampleInputs[key]
				if err := b.Fill(r.Context(), el.Selector, value); err != nil {
					h.logger.Warn("form field fill failed", "selector", el.Selector, "error", err)
				} else {
					field.Value = &value
				}
			}
			resp.Fields = append(resp.Fields, field)
		}
		return nil
	})
	if err != nil {
		h.logger.Error("form filling failed", "url", url, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"message": "Failed to fill form",
			"error":   err.Error(),
		})
		return
	}

	resp.Count = len(resp.Fields)
	writeJSON(w, http.StatusOK, resp)
}
