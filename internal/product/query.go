package product

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
)

const (
	DefaultPage  = 1
	DefaultLimit = 9
	MaxLimit     = 100
)

type SortDirection string

const (
	SortDirectionAsc  SortDirection = "asc"
	SortDirectionDesc SortDirection = "desc"
)

// ListOptions is the decoded /allproducts query. Nil filters are absent,
// which is different from matching the empty string.
type ListOptions struct {
	Title    *string
	Category *string
	Brand    *string
	Sort     SortDirection
	Page     int
	Limit    int
}

type MatchRule int

const (
	// MatchContains is a case-insensitive substring match.
	MatchContains MatchRule = iota
	MatchExact
)

type Predicate struct {
	Field string
	Match MatchRule
	Value string
}

// QuerySpec is the storage-neutral form of a listing request.
type QuerySpec struct {
	Predicates []Predicate
	SortField  string
	SortDir    SortDirection
	Skip       int
	Limit      int
}

// ParseListOptions decodes title, category, brand, sort, page and limit.
// page and limit must be positive integers when present; limit is capped
// at MaxLimit.
func ParseListOptions(q url.Values) (ListOptions, error) {
	opts := ListOptions{
		Title:    optional(q, "title"),
		Category: optional(q, "category"),
		Brand:    optional(q, "brand"),
		Sort:     MapSortDirection(q.Get("sort")),
		Page:     DefaultPage,
		Limit:    DefaultLimit,
	}

	if raw := q.Get("page"); raw != "" {
		n, err := positiveInt(raw)
		if err != nil {
			return ListOptions{}, ErrInvalidPage
		}
		opts.Page = n
	}

	if raw := q.Get("limit"); raw != "" {
		n, err := positiveInt(raw)
		if err != nil {
			return ListOptions{}, ErrInvalidLimit
		}
		opts.Limit = n
	}

	opts = opts.normalize()

	// The row offset (page-1)*limit must fit in an int.
	if opts.Page > math.MaxInt/opts.Limit {
		return ListOptions{}, ErrInvalidPage
	}
	return opts, nil
}

func (o ListOptions) normalize() ListOptions {
	if o.Page <= 0 {
		o.Page = DefaultPage
	}
	if o.Limit <= 0 {
		o.Limit = DefaultLimit
	} else if o.Limit > MaxLimit {
		o.Limit = MaxLimit
	}
	if o.Sort != SortDirectionAsc {
		o.Sort = SortDirectionDesc
	}
	return o
}

// BuildQuery turns options into a predicate, a price ordering and a page window.
func BuildQuery(opts ListOptions) QuerySpec {
	opts = opts.normalize()

	spec := QuerySpec{
		SortField: "price",
		SortDir:   opts.Sort,
		Skip:      (opts.Page - 1) * opts.Limit,
		Limit:     opts.Limit,
	}

	if opts.Title != nil {
		spec.Predicates = append(spec.Predicates, Predicate{Field: "title", Match: MatchContains, Value: *opts.Title})
	}
	if opts.Category != nil {
		spec.Predicates = append(spec.Predicates, Predicate{Field: "category", Match: MatchContains, Value: *opts.Category})
	}
	if opts.Brand != nil {
		spec.Predicates = append(spec.Predicates, Predicate{Field: "brand", Match: MatchExact, Value: *opts.Brand})
	}

	return spec
}

const productColumns = `id, title, category, brand, price, seller_email, attributes, created_at`

// ListSQL renders the page query. Ties on price are broken by id so pages
// do not overlap.
func (q QuerySpec) ListSQL() (string, []interface{}) {
	where, args := q.whereClause()

	query := "SELECT " + productColumns + " FROM products" + where
	query += fmt.Sprintf(" ORDER BY %s %s, id ASC", q.SortField, sqlDirection(q.SortDir))
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, q.Limit, q.Skip)

	return query, args
}

// CountSQL renders the count of every row matching the predicate.
func (q QuerySpec) CountSQL() (string, []interface{}) {
	where, args := q.whereClause()
	return "SELECT COUNT(*) FROM products" + where, args
}

func (q QuerySpec) whereClause() (string, []interface{}) {
	where := []string{}
	args := []interface{}{}

	for _, p := range q.Predicates {
		switch p.Match {
		case MatchContains:
			where = append(where, fmt.Sprintf("%s ILIKE $%d", p.Field, len(args)+1))
			args = append(args, "%"+escapeLike(p.Value)+"%")
		case MatchExact:
			where = append(where, fmt.Sprintf("%s = $%d", p.Field, len(args)+1))
			args = append(args, p.Value)
		}
	}

	if len(where) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(where, " AND "), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func sqlDirection(d SortDirection) string {
	if d == SortDirectionAsc {
		return "ASC"
	}
	return "DESC"
}

func optional(q url.Values, key string) *string {
	v := q.Get(key)
	if v == "" {
		return nil
	}
	return &v
}

func positiveInt(raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, fmt.Errorf("%d is not positive", n)
	}
	return n, nil
}
