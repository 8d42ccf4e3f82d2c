package query

import (
	"math"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/charlesng35/restaurants/pkg/errors"
	appvalidator "github.com/charlesng35/restaurants/pkg/validator"
)

// Direction orders sorted results.
type Direction string

const (
	Ascending  Direction = "ASC"
	Descending Direction = "DESC"
)

// Sortable columns.
const (
	SortName        = "Name"
	SortCategory    = "Category"
	SortDescription = "Description"
)

var (
	// AllowedPageSizes lists the accepted page sizes.
	AllowedPageSizes = []int{5, 10, 15}
	// SortColumns lists the accepted sort columns.
	SortColumns = []string{SortName, SortCategory, SortDescription}
)

const (
	pageNumberMessage    = "PageNumber must be greater than or equal to 1"
	sortDirectionMessage = "SortDirection must be ASC or DESC"
)

// Spec is a validated list request.
type Spec struct {
	SearchPhrase  string
	SortBy        string
	SortDirection Direction
	PageNumber    int
	PageSize      int
}

// Offset is the number of records skipped before the page starts. It
// saturates at math.MaxInt for page numbers far past any data set.
func (s Spec) Offset() int {
	return pageOffset(s.PageNumber, s.PageSize)
}

func pageOffset(pageNumber, pageSize int) int {
	if pageNumber <= 1 || pageSize <= 0 {
		return 0
	}
	if pageNumber-1 > math.MaxInt/pageSize {
		return math.MaxInt
	}
	return (pageNumber - 1) * pageSize
}

// Criteria returns the filter and order part of the spec.
func (s Spec) Criteria() Criteria {
	return Criteria{
		SearchPhrase:  s.SearchPhrase,
		SortBy:        s.SortBy,
		SortDirection: s.SortDirection,
	}
}

// Window returns the slice of the ordered result the spec selects.
func (s Spec) Window() Window {
	return Window{Offset: s.Offset(), Limit: s.PageSize}
}

// RawParams carries list parameters exactly as received.
type RawParams struct {
	SearchPhrase  string
	SortBy        string
	SortDirection string
	PageNumber    string
	PageSize      string
}

// ParamsFromValues reads list parameters from a query string.
func ParamsFromValues(values url.Values) RawParams {
	return RawParams{
		SearchPhrase:  values.Get("searchPhrase"),
		SortBy:        values.Get("sortBy"),
		SortDirection: values.Get("sortDirection"),
		PageNumber:    values.Get("pageNumber"),
		PageSize:      values.Get("pageSize"),
	}
}

type specInput struct {
	PageNumber    int    `json:"pageNumber" validate:"gte=1"`
	PageSize      int    `json:"pageSize" validate:"page_size"`
	SortBy        string `json:"sortBy" validate:"omitempty,sort_column"`
	SortDirection string `json:"sortDirection" validate:"oneof=ASC DESC"`
}

var registerOnce sync.Once

func registerRules() {
	registerOnce.Do(func() {
		_ = appvalidator.RegisterValidation("page_size", func(fl validator.FieldLevel) bool {
			return slices.Contains(AllowedPageSizes, int(fl.Field().Int()))
		})
		_ = appvalidator.RegisterValidation("sort_column", func(fl validator.FieldLevel) bool {
			return slices.Contains(SortColumns, fl.Field().String())
		})

		appvalidator.RegisterMessage("page_size", func(appvalidator.ValidationError) string {
			return "PageSize must be in [" + joinInts(AllowedPageSizes, ",") + "]"
		})
		appvalidator.RegisterMessage("sort_column", func(appvalidator.ValidationError) string {
			return "Sort by is optional, or must be in " + strings.Join(SortColumns, ",")
		})
	})
}

// Parse validates raw list parameters. Every failing field is reported in a
// single validation error.
func Parse(raw RawParams) (Spec, error) {
	registerRules()

	fields := map[string][]string{}

	pageNumber, err := strconv.Atoi(strings.TrimSpace(raw.PageNumber))
	if err != nil {
		fields["pageNumber"] = []string{pageNumberMessage}
		pageNumber = 1
	}

	pageSize, err := strconv.Atoi(strings.TrimSpace(raw.PageSize))
	if err != nil {
		pageSize = 0
	}

	direction := strings.ToUpper(strings.TrimSpace(raw.SortDirection))
	if direction == "" {
		direction = string(Ascending)
	}

	input := specInput{
		PageNumber:    pageNumber,
		PageSize:      pageSize,
		SortBy:        strings.TrimSpace(raw.SortBy),
		SortDirection: direction,
	}

	if err := appvalidator.ValidateStruct(input); err != nil {
		failures, ok := err.(appvalidator.ValidationErrors)
		if !ok {
			return Spec{}, err
		}
		for _, failure := range failures {
			if len(fields[failure.Field]) > 0 {
				continue
			}
			fields[failure.Field] = []string{fieldMessage(failure)}
		}
	}

	if len(fields) > 0 {
		return Spec{}, apperrors.NewValidation(fields)
	}

	return Spec{
		SearchPhrase:  strings.TrimSpace(raw.SearchPhrase),
		SortBy:        input.SortBy,
		SortDirection: Direction(input.SortDirection),
		PageNumber:    input.PageNumber,
		PageSize:      input.PageSize,
	}, nil
}

func fieldMessage(failure appvalidator.ValidationError) string {
	switch failure.Field {
	case "pageNumber":
		return pageNumberMessage
	case "sortDirection":
		return sortDirectionMessage
	}
	return failure.Message()
}

func joinInts(values []int, sep string) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, sep)
}
