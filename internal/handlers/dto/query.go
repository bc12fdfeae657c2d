package dto

import (
	"errors"
	"net/url"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/thereayou/blog-lite/internal/models"
)

const (
	DefaultUserLimit = 100
	MaxUserLimit     = 1000
	DefaultPostLimit = 10
	MaxPostLimit     = 100
)

// ListUsersQuery - GET /users?skip=0&limit=100
type ListUsersQuery struct {
	Skip  int `json:"skip"`
	Limit int `json:"limit"`
}

func (q ListUsersQuery) Validate() error {
	return validation.ValidateStruct(&q,
		validation.Field(&q.Skip, validation.Min(0)),
		validation.Field(&q.Limit,
			validation.Required.Error("must be no less than 1"),
			validation.Min(1),
			validation.Max(MaxUserLimit),
		),
	)
}

func ParseListUsersQuery(values url.Values) (ListUsersQuery, error) {
	p := newQueryParser(values)
	q := ListUsersQuery{
		Skip:  p.intParam(0, "skip"),
		Limit: p.intParam(DefaultUserLimit, "limit"),
	}
	return q, p.finish(q)
}

// ListPostsQuery - GET /posts. Filter names are accepted in snake_case and camelCase.
type ListPostsQuery struct {
	Skip        int    `json:"skip"`
	Limit       int    `json:"limit"`
	AuthorID    *uint  `json:"author_id"`
	Search      string `json:"search"`
	IsPublished *bool  `json:"is_published"`
	OrderBy     string `json:"order_by"`
	OrderDir    string `json:"order_dir"`
}

func (q ListPostsQuery) Validate() error {
	return validation.ValidateStruct(&q,
		validation.Field(&q.Skip, validation.Min(0)),
		validation.Field(&q.Limit,
			validation.Required.Error("must be no less than 1"),
			validation.Min(1),
			validation.Max(MaxPostLimit),
		),
		validation.Field(&q.OrderBy, validation.In("created_at", "title", "id")),
		validation.Field(&q.OrderDir, validation.In("asc", "desc")),
	)
}

func ParseListPostsQuery(values url.Values) (ListPostsQuery, error) {
	p := newQueryParser(values)
	q := ListPostsQuery{
		Skip:        p.intParam(0, "skip"),
		Limit:       p.intParam(DefaultPostLimit, "limit"),
		AuthorID:    p.uintParam("author_id", "authorId"),
		Search:      p.stringParam("", "search"),
		IsPublished: p.boolParam("is_published", "isPublished"),
		OrderBy:     p.stringParam("created_at", "order_by", "orderBy"),
		OrderDir:    p.stringParam("desc", "order_dir", "orderDir"),
	}
	return q, p.finish(q)
}

func (q ListPostsQuery) ToFilter() models.PostFilter {
	return models.PostFilter{
		AuthorID:    q.AuthorID,
		Search:      q.Search,
		IsPublished: q.IsPublished,
		OrderBy:     q.OrderBy,
		OrderDir:    q.OrderDir,
		Skip:        q.Skip,
		Limit:       q.Limit,
	}
}

// queryParser collects type errors per parameter so they are reported
// together with rule violations.
type queryParser struct {
	values url.Values
	errs   validation.Errors
}

func newQueryParser(values url.Values) *queryParser {
	return &queryParser{values: values, errs: validation.Errors{}}
}

// lookup returns the first supplied value among the parameter's names.
func (p *queryParser) lookup(names ...string) (string, bool) {
	for _, name := range names {
		if v, ok := p.values[name]; ok && len(v) > 0 {
			return strings.TrimSpace(v[0]), true
		}
	}
	return "", false
}

func (p *queryParser) intParam(def int, names ...string) int {
	raw, ok := p.lookup(names...)
	if !ok {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		p.errs[names[0]] = errors.New("must be a valid integer")
		return def
	}
	return v
}

func (p *queryParser) uintParam(names ...string) *uint {
	raw, ok := p.lookup(names...)
	if !ok || raw == "" {
		return nil
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		p.errs[names[0]] = errors.New("must be a valid id")
		return nil
	}
	id := uint(v)
	return &id
}

var queryBools = map[string]bool{
	"1": true, "t": true, "true": true, "y": true, "yes": true, "on": true,
	"0": false, "f": false, "false": false, "n": false, "no": false, "off": false,
}

func (p *queryParser) boolParam(names ...string) *bool {
	raw, ok := p.lookup(names...)
	if !ok || raw == "" {
		return nil
	}
	v, known := queryBools[strings.ToLower(raw)]
	if !known {
		p.errs[names[0]] = errors.New("must be a valid boolean")
		return nil
	}
	return &v
}

func (p *queryParser) stringParam(def string, names ...string) string {
	raw, ok := p.lookup(names...)
	if !ok || raw == "" {
		return def
	}
	return raw
}

func (p *queryParser) finish(v validation.Validatable) error {
	if err := v.Validate(); err != nil {
		var ruleErrs validation.Errors
		if !errors.As(err, &ruleErrs) {
			return err
		}
		for field, fieldErr := range ruleErrs {
			if _, ok := p.errs[field]; !ok {
				p.errs[field] = fieldErr
			}
		}
	}
	if len(p.errs) > 0 {
		return p.errs
	}
	return nil
}
