package target

import (
	"context"
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"
)

func openSQLite(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("sql.Open() error = %v", err)
	}
	// Every connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSQLTarget(t *testing.T) {
	ctx := context.Background()
	s := NewSQL(openSQLite(t), WithSQLTableName("fibers"))
	r := mountDemo(t, s)

	n, err := s.Count(ctx)
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if n != 3 {
		t.Fatalf("Count() = %d, want 3", n)
	}

	click(t, r, "b")
	click(t, r, "b")

	f, _ := r.Lookup(r.RootFiber())
	b := f.Children()[1]
	rec, err := s.Latest(ctx, b)
	if err != nil {
		t.Fatalf("Latest() error = %v", err)
	}
	if rec == nil {
		t.Fatal("Latest() = nil")
	}
	if got := rec.Node.Children[0].Text; got != "b 2" {
		t.Errorf("stored text = %q, want %q", got, "b 2")
	}
	if rec.Seq != 5 {
		t.Errorf("stored Seq = %d, want 5", rec.Seq)
	}
	if n, _ := s.Count(ctx); n != 3 {
		t.Errorf("Count() after updates = %d, want 3", n)
	}

	if err := r.Unmount(); err != nil {
		t.Fatalf("Unmount() error = %v", err)
	}
	if n, _ := s.Count(ctx); n != 0 {
		t.Errorf("Count() after unmount = %d, want 0", n)
	}
	rec, err = s.Latest(ctx, b)
	if err != nil || rec != nil {
		t.Errorf("Latest() after unmount = %v, %v; want nil, nil", rec, err)
	}
}

func TestSQLWithoutCreateTable(t *testing.T) {
	s := NewSQL(openSQLite(t), WithoutSQLCreateTable())
	if err := s.Open(context.Background()); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if _, err := s.Count(context.Background()); err == nil {
		t.Error("Count() on missing table succeeded")
	}
}

func TestSQLPlaceholder(t *testing.T) {
	tests := []struct {
		dialect SQLDialect
		want    string
	}{
		{DialectSQLite, "?"},
		{DialectMySQL, "?"},
		{DialectPostgreSQL, "$2"},
	}
	for _, tt := range tests {
		s := NewSQL(nil, WithSQLDialect(tt.dialect))
		if got := s.placeholder(2); got != tt.want {
			t.Errorf("placeholder(2) for %d = %q, want %q", tt.dialect, got, tt.want)
		}
	}
}

func TestParseDialect(t *testing.T) {
	tests := []struct {
		name    string
		want    SQLDialect
		wantErr bool
	}{
		{"sqlite", DialectSQLite, false},
		{"postgres", DialectPostgreSQL, false},
		{"mysql", DialectMySQL, false},
		{"oracle", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseDialect(tt.name)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseDialect(%q) error = %v", tt.name, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseDialect(%q) = %d, want %d", tt.name, got, tt.want)
		}
	}
}
