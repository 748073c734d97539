package gamelog

const createGameTable = `
CREATE TABLE IF NOT EXISTS games (
  id integer primary key,
  played datetime not null,
  player_x varchar not null,
  player_o varchar not null,
  first varchar(1) not null,
  start string not null,
  moves string not null,
  result string not null,
  winner string not null
)`

const createPlayerView = `
CREATE VIEW IF NOT EXISTS player_games (
  id, player, opponent, color, win, moves
) AS
SELECT id, player_x, player_o, 'x',
       CASE result WHEN 'x' THEN 'win' WHEN 'o' THEN 'lose' WHEN 'draw' THEN 'tie' ELSE 'unfinished' END,
       length(moves)
 FROM games
UNION ALL
SELECT id, player_o, player_x, 'o',
       CASE result WHEN 'o' THEN 'win' WHEN 'x' THEN 'lose' WHEN 'draw' THEN 'tie' ELSE 'unfinished' END,
       length(moves)
 FROM games
`

const insertGame = `
INSERT INTO games (played, player_x, player_o, first, start, moves, result, winner)
VALUES (:played, :player_x, :player_o, :first, :start, :moves, :result, :winner)
`

const selectGames = `
SELECT id, played, player_x, player_o, first, start, moves, result, winner
FROM games
ORDER BY id DESC
LIMIT ?
`

const selectStandings = `
SELECT player,
       SUM(CASE win WHEN 'win' THEN 1 ELSE 0 END) AS wins,
       SUM(CASE win WHEN 'lose' THEN 1 ELSE 0 END) AS losses,
       SUM(CASE win WHEN 'tie' THEN 1 ELSE 0 END) AS draws
FROM player_games
GROUP BY player
ORDER BY wins DESC, player
`
