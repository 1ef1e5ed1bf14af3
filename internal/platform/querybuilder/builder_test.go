package querybuilder

import (
	"reflect"
	"testing"
)

func TestSelect_ToSQL(t *testing.T) {
	t.Parallel()

	sql, args, err := Select("id", "name").
		From("teams").
		Where(Eq("matchday_id", "md1")).
		OrderBy("name", "id").
		Limit(10).
		ToSQL()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "SELECT id, name FROM teams WHERE matchday_id = $1 ORDER BY name, id LIMIT 10"
	if sql != want {
		t.Fatalf("unexpected sql:\n got %q\nwant %q", sql, want)
	}
	if !reflect.DeepEqual(args, []any{"md1"}) {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestSelect_MultipleConditionsJoinWithAnd(t *testing.T) {
	t.Parallel()

	sql, args, err := Select("id").
		From("goal_events").
		Where(Eq("game_id", "g1"), Eq("active", true)).
		ToSQL()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "SELECT id FROM goal_events WHERE game_id = $1 AND active = $2"
	if sql != want {
		t.Fatalf("unexpected sql: %q", sql)
	}
	if !reflect.DeepEqual(args, []any{"g1", true}) {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestSelect_InCondition(t *testing.T) {
	t.Parallel()

	sql, args, err := Select("id").
		From("players").
		Where(In("team_id", []any{"t1", "t2"})).
		ToSQL()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "SELECT id FROM players WHERE team_id IN ($1, $2)"
	if sql != want {
		t.Fatalf("unexpected sql: %q", sql)
	}
	if !reflect.DeepEqual(args, []any{"t1", "t2"}) {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestSelect_EmptyInMatchesNothing(t *testing.T) {
	t.Parallel()

	sql, args, err := Select("id").
		From("players").
		Where(In("team_id", nil)).
		ToSQL()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if sql != "SELECT id FROM players WHERE 1=0" {
		t.Fatalf("unexpected sql: %q", sql)
	}
	if len(args) != 0 {
		t.Fatalf("expected no args, got %v", args)
	}
}

func TestSelect_Errors(t *testing.T) {
	t.Parallel()

	if _, _, err := Select().From("teams").ToSQL(); err == nil {
		t.Fatal("expected error for missing columns")
	}
	if _, _, err := Select("id").ToSQL(); err == nil {
		t.Fatal("expected error for missing table")
	}
}

func TestInsert_MultiRow(t *testing.T) {
	t.Parallel()

	sql, args, err := InsertInto("goal_events").
		Columns("id", "game_id").
		Values("e1", "g1").
		Values("e2", "g1").
		ToSQL()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "INSERT INTO goal_events (id, game_id) VALUES ($1, $2), ($3, $4)"
	if sql != want {
		t.Fatalf("unexpected sql: %q", sql)
	}
	if !reflect.DeepEqual(args, []any{"e1", "g1", "e2", "g1"}) {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestInsert_RowArityMismatch(t *testing.T) {
	t.Parallel()

	_, _, err := InsertInto("teams").
		Columns("id", "name").
		Values("t1").
		ToSQL()
	if err == nil {
		t.Fatal("expected arity error")
	}
}

func TestInsert_Errors(t *testing.T) {
	t.Parallel()

	if _, _, err := InsertInto("").Columns("id").Values("x").ToSQL(); err == nil {
		t.Fatal("expected error for missing table")
	}
	if _, _, err := InsertInto("teams").Values("x").ToSQL(); err == nil {
		t.Fatal("expected error for missing columns")
	}
	if _, _, err := InsertInto("teams").Columns("id").ToSQL(); err == nil {
		t.Fatal("expected error for missing values")
	}
}

func TestUpdate_ToSQL(t *testing.T) {
	t.Parallel()

	sql, args, err := Update("games").
		Set("status", "completed").
		Set("winner_team_id", "t1").
		Where(Eq("id", "g1")).
		ToSQL()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "UPDATE games SET status = $1, winner_team_id = $2 WHERE id = $3"
	if sql != want {
		t.Fatalf("unexpected sql: %q", sql)
	}
	if !reflect.DeepEqual(args, []any{"completed", "t1", "g1"}) {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestUpdate_RequiresSets(t *testing.T) {
	t.Parallel()

	if _, _, err := Update("games").Where(Eq("id", "g1")).ToSQL(); err == nil {
		t.Fatal("expected error for missing sets")
	}
}

func TestDelete_ToSQL(t *testing.T) {
	t.Parallel()

	sql, args, err := DeleteFrom("matchdays").
		Where(Eq("id", "md1")).
		ToSQL()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if sql != "DELETE FROM matchdays WHERE id = $1" {
		t.Fatalf("unexpected sql: %q", sql)
	}
	if !reflect.DeepEqual(args, []any{"md1"}) {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestDelete_RequiresConditions(t *testing.T) {
	t.Parallel()

	// A DELETE with no WHERE would wipe the table; refuse to build it.
	if _, _, err := DeleteFrom("matchdays").ToSQL(); err == nil {
		t.Fatal("expected error for missing conditions")
	}
	if _, _, err := DeleteFrom("").Where(Eq("id", "x")).ToSQL(); err == nil {
		t.Fatal("expected error for missing table")
	}
}
