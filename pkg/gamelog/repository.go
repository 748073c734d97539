package gamelog

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // repository assumes sqlite

	"github.com/IlikeChooros/go-connect4/pkg/board"
	"github.com/IlikeChooros/go-connect4/pkg/game"
)

const (
	ResultX          = "x"
	ResultO          = "o"
	ResultDraw       = "draw"
	ResultUnfinished = "unfinished"
)

// One finished (or abandoned) game
type Record struct {
	ID      int64     `db:"id"`
	Played  time.Time `db:"played"`
	PlayerX string    `db:"player_x"`
	PlayerO string    `db:"player_o"`
	First   string    `db:"first"`
	Start   string    `db:"start"`
	Moves   string    `db:"moves"`
	Result  string    `db:"result"`
	Winner  string    `db:"winner"`
}

// Wins, losses and draws of a player over all stored games
type Standing struct {
	Player string `db:"player"`
	Wins   int    `db:"wins"`
	Losses int    `db:"losses"`
	Draws  int    `db:"draws"`
}

// Build the record of the game, 'start' is the notation of the initial position
func FromGame(g *game.Game, start, playerX, playerO string) Record {
	r := Record{
		Played:  time.Now().UTC(),
		PlayerX: playerX,
		PlayerO: playerO,
		First:   g.First().String(),
		Start:   start,
		Moves:   g.ColumnString(),
		Result:  ResultUnfinished,
	}

	switch {
	case g.Winner() == board.X:
		r.Result, r.Winner = ResultX, playerX
	case g.Winner() == board.O:
		r.Result, r.Winner = ResultO, playerO
	case g.Outcome() == board.Draw:
		r.Result = ResultDraw
	}
	return r
}

type Repository struct {
	db *sqlx.DB

	insert *sqlx.NamedStmt
}

func Open(path string) (*Repository, error) {
	db, err := sqlx.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	_, err = db.Exec(createGameTable)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create game table: %w", err)
	}
	_, err = db.Exec(createPlayerView)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create player_games view: %w", err)
	}

	repo := &Repository{db: db}
	repo.insert, err = db.PrepareNamed(insertGame)
	if err != nil {
		repo.Close()
		return nil, fmt.Errorf("prepare: %w", err)
	}
	return repo, nil
}

func (r *Repository) InsertGame(g Record) error {
	return r.insertGame(r.insert, g)
}

func (r *Repository) insertGame(stmt *sqlx.NamedStmt, g Record) error {
	_, err := stmt.Exec(g)
	return err
}

// Insert all games in one transaction
func (r *Repository) InsertGames(gs []Record) error {
	txn, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer txn.Rollback()
	stmt := txn.NamedStmt(r.insert)
	for _, g := range gs {
		if e := r.insertGame(stmt, g); e != nil {
			return e
		}
	}
	return txn.Commit()
}

// Most recent games first
func (r *Repository) Games(limit int) ([]Record, error) {
	var games []Record
	if err := r.db.Select(&games, selectGames, limit); err != nil {
		return nil, fmt.Errorf("select games: %w", err)
	}
	return games, nil
}

func (r *Repository) Standings() ([]Standing, error) {
	var standings []Standing
	if err := r.db.Select(&standings, selectStandings); err != nil {
		return nil, fmt.Errorf("select standings: %w", err)
	}
	return standings, nil
}

func (r *Repository) Close() {
	if r.insert != nil {
		r.insert.Close()
	}
	r.db.Close()
}
