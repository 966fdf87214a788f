package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"travel_reco/internal/domain"
)

func valStr(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// Repo stores the catalog in three position-ordered tables.
type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) Name() string { return "mysql" }

// ReplaceCatalog swaps the stored catalog for c in a single transaction.
func (r *Repo) ReplaceCatalog(ctx context.Context, c domain.Catalog) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, q := range []string{deleteCitiesSQL, deleteCountriesSQL, deleteSitesSQL} {
		if _, err = tx.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("clear catalog: %w", err)
		}
	}
	if err = insertCountries(ctx, tx, c.Countries); err != nil {
		return err
	}
	if err = insertCities(ctx, tx, c.Countries); err != nil {
		return err
	}
	if err = insertSites(ctx, tx, domain.KindTemple, c.Temples); err != nil {
		return err
	}
	if err = insertSites(ctx, tx, domain.KindBeach, c.Beaches); err != nil {
		return err
	}
	return tx.Commit()
}

func insertCountries(ctx context.Context, tx *sql.Tx, cs []domain.Country) error {
	if len(cs) == 0 {
		return nil
	}
	values := make([]string, 0, len(cs))
	args := make([]any, 0, len(cs)*2)
	for i, c := range cs {
		values = append(values, "(?,?)")
		args = append(args, i, c.Name)
	}
	if _, err := tx.ExecContext(ctx, insertCountriesPrefix+strings.Join(values, ","), args...); err != nil {
		return fmt.Errorf("insert countries: %w", err)
	}
	return nil
}

func insertCities(ctx context.Context, tx *sql.Tx, cs []domain.Country) error {
	var values []string
	var args []any
	for ci, c := range cs {
		for i, city := range c.Cities {
			values = append(values, "(?,?,?,?)")
			args = append(args, ci, i, city.Name, city.Description)
		}
	}
	if len(values) == 0 {
		return nil
	}
	if _, err := tx.ExecContext(ctx, insertCitiesPrefix+strings.Join(values, ","), args...); err != nil {
		return fmt.Errorf("insert cities: %w", err)
	}
	return nil
}

func insertSites(ctx context.Context, tx *sql.Tx, kind domain.SiteKind, ss []domain.Site) error {
	if len(ss) == 0 {
		return nil
	}
	values := make([]string, 0, len(ss))
	args := make([]any, 0, len(ss)*5)
	for i, s := range ss {
		values = append(values, "(?,?,?,?,?)")
		args = append(args, string(kind), i, s.Name, s.Description, valStr(s.ImageURL))
	}
	if _, err := tx.ExecContext(ctx, insertSitesPrefix+strings.Join(values, ","), args...); err != nil {
		return fmt.Errorf("insert %ss: %w", kind, err)
	}
	return nil
}

// LoadCatalog reads the stored catalog. It returns domain.ErrNotFound when
// nothing has been imported yet.
func (r *Repo) LoadCatalog(ctx context.Context) (domain.Catalog, error) {
	var (
		countries []domain.Country
		positions []int
		cities    []cityRow
		temples   []domain.Site
		beaches   []domain.Site
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		countries, positions, err = r.countries(gctx)
		return err
	})
	g.Go(func() (err error) {
		cities, err = r.cities(gctx)
		return err
	})
	g.Go(func() (err error) {
		temples, err = r.sites(gctx, domain.KindTemple)
		return err
	})
	g.Go(func() (err error) {
		beaches, err = r.sites(gctx, domain.KindBeach)
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.Catalog{}, err
	}

	if len(countries) == 0 && len(temples) == 0 && len(beaches) == 0 {
		return domain.Catalog{}, fmt.Errorf("catalog tables are empty: %w", domain.ErrNotFound)
	}

	idx := make(map[int]int, len(positions))
	for i, p := range positions {
		idx[p] = i
	}
	for _, cr := range cities {
		if i, ok := idx[cr.countryPos]; ok {
			countries[i].Cities = append(countries[i].Cities, cr.city)
		}
	}

	c := domain.Catalog{Countries: countries, Temples: temples, Beaches: beaches}
	c.Normalize()
	return c, nil
}

type cityRow struct {
	countryPos int
	city       domain.City
}

func (r *Repo) countries(ctx context.Context) ([]domain.Country, []int, error) {
	rows, err := r.db.QueryContext(ctx, selectCountriesSQL)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var out []domain.Country
	var pos []int
	for rows.Next() {
		var p int
		var c domain.Country
		if err := rows.Scan(&p, &c.Name); err != nil {
			return nil, nil, err
		}
		out = append(out, c)
		pos = append(pos, p)
	}
	return out, pos, rows.Err()
}

func (r *Repo) cities(ctx context.Context) ([]cityRow, error) {
	rows, err := r.db.QueryContext(ctx, selectCitiesSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []cityRow
	for rows.Next() {
		var cr cityRow
		if err := rows.Scan(&cr.countryPos, &cr.city.Name, &cr.city.Description); err != nil {
			return nil, err
		}
		out = append(out, cr)
	}
	return out, rows.Err()
}

func (r *Repo) sites(ctx context.Context, kind domain.SiteKind) ([]domain.Site, error) {
	rows, err := r.db.QueryContext(ctx, selectSitesSQL, string(kind))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Site
	for rows.Next() {
		var s domain.Site
		var img sql.NullString
		if err := rows.Scan(&s.Name, &s.Description, &img); err != nil {
			return nil, err
		}
		if img.Valid {
			s.ImageURL = img.String
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
