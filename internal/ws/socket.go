package ws

import (
	"context"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	socketio "github.com/googollee/go-socket.io"
	"github.com/rs/zerolog/log"

	"github.com/swipedeck/swipedeck/internal/compat"
	"github.com/swipedeck/swipedeck/internal/config"
	"github.com/swipedeck/swipedeck/internal/player"
	"github.com/swipedeck/swipedeck/internal/stats"
)

type ConnCtx struct {
	Code     string
	Username string
}

// Server is the transport layer: it dispatches socket events into the
// player manager and the compatibility coordinator and broadcasts room
// state to the other members. The core never initiates notifications
// itself.
type Server struct {
	players *player.Manager
	queries *player.QueryService
	coord   *compat.Coordinator
	calc    *compat.Calculator
	stats   stats.Sink
	cfg     config.Config

	mu      sync.Mutex
	members map[string]map[string]socketio.Conn // roomCode -> socketID -> Conn
}

func New(players *player.Manager, queries *player.QueryService, coord *compat.Coordinator, calc *compat.Calculator, sink stats.Sink, cfg config.Config) *Server {
	return &Server{
		players: players,
		queries: queries,
		coord:   coord,
		calc:    calc,
		stats:   sink,
		cfg:     cfg,
		members: make(map[string]map[string]socketio.Conn),
	}
}

// Mount attaches the Socket.IO server with handlers to the given Gin engine.
func (srv *Server) Mount(r *gin.Engine) *socketio.Server {
	io := socketio.NewServer(nil)

	io.OnConnect("/", func(s socketio.Conn) error {
		s.SetContext(&ConnCtx{})
		log.Info().Str("sid", s.ID()).Msg("socket connected")
		return nil
	})

	// room:create
	io.OnEvent("/", "room:create", func(s socketio.Conn, payload struct {
		Username string `json:"username"`
	}) map[string]any {
		rm := srv.players.CreateRoom(s.ID(), payload.Username)
		s.SetContext(&ConnCtx{Code: rm.Code, Username: payload.Username})
		s.Join(rm.Code)
		srv.addMember(rm.Code, s)
		log.Info().Str("sid", s.ID()).Str("code", rm.Code).Msg("room:create")
		srv.emitRoomState(rm.Code)
		return map[string]any{"roomCode": rm.Code, "state": string(rm.State())}
	})

	// room:join
	io.OnEvent("/", "room:join", func(s socketio.Conn, payload struct {
		RoomCode string `json:"roomCode"`
		Username string `json:"username"`
	}) map[string]any {
		res := srv.players.JoinRoom(payload.RoomCode, s.ID(), payload.Username)
		if !res.Success {
			return srv.fail(s, res.Message, string(res.State))
		}
		s.SetContext(&ConnCtx{Code: payload.RoomCode, Username: payload.Username})
		s.Join(payload.RoomCode)
		srv.addMember(payload.RoomCode, s)
		log.Info().Str("sid", s.ID()).Str("code", payload.RoomCode).Str("username", payload.Username).Msg("room:join")
		srv.emitRoomState(payload.RoomCode)
		return map[string]any{"success": true, "roomCode": payload.RoomCode, "state": string(res.State)}
	})

	// room:leave
	io.OnEvent("/", "room:leave", func(s socketio.Conn) map[string]any {
		srv.dropConnection(s)
		s.SetContext(&ConnCtx{})
		return map[string]any{"success": true}
	})

	// player:ready
	io.OnEvent("/", "player:ready", func(s socketio.Conn, payload struct {
		Ready bool `json:"ready"`
	}) map[string]any {
		ctx := s.Context().(*ConnCtx)
		rm, ok := srv.queries.GetRoomInfo(ctx.Code)
		if !ok {
			return srv.fail(s, "Room not found", "")
		}
		rm.SetReady(ctx.Username, payload.Ready)
		srv.emitRoomState(ctx.Code)
		return map[string]any{"success": true}
	})

	// statements:get
	io.OnEvent("/", "statements:get", func(s socketio.Conn, payload struct {
		Topics []string `json:"topics"`
		Count  int      `json:"count"`
	}) map[string]any {
		ctx := s.Context().(*ConnCtx)
		if ctx.Code == "" {
			return srv.fail(s, "Room not found", "")
		}
		count := payload.Count
		if count <= 0 {
			count = srv.cfg.StatementsPerGame
		}
		statements := srv.coord.GetRoomStatements(ctx.Code, payload.Topics, count)
		return map[string]any{"success": true, "statements": statements}
	})

	// swipe:save
	io.OnEvent("/", "swipe:save", func(s socketio.Conn, payload struct {
		StatementID string `json:"statementId"`
		Agree       bool   `json:"agree"`
	}) map[string]any {
		ctx := s.Context().(*ConnCtx)
		if ctx.Code == "" {
			return srv.fail(s, "Room not found", "")
		}
		if !srv.coord.SaveSwipe(context.Background(), ctx.Code, ctx.Username, payload.StatementID, payload.Agree) {
			return srv.fail(s, "Could not save swipe", "")
		}

		// finalize as soon as the last player answers the last statement
		usernames := srv.queries.GetRoomPlayerUsernames(ctx.Code)
		total := len(srv.coord.GetRoomStatements(ctx.Code, nil, srv.cfg.StatementsPerGame))
		done, err := srv.coord.HaveAllPlayersFinished(context.Background(), ctx.Code, usernames, total)
		if err != nil {
			log.Error().Err(err).Str("code", ctx.Code).Msg("completion check failed")
		} else if done && total > 0 {
			srv.finishGame(ctx.Code, usernames)
		}
		return map[string]any{"success": true}
	})

	// game:finish (host-triggered early finalize)
	io.OnEvent("/", "game:finish", func(s socketio.Conn) map[string]any {
		ctx := s.Context().(*ConnCtx)
		rm, ok := srv.queries.GetRoomInfo(ctx.Code)
		if !ok {
			return srv.fail(s, "Room not found", "")
		}
		if rm.Host() != ctx.Username {
			return srv.fail(s, "Only the host can finish the game", string(rm.State()))
		}
		srv.finishGame(ctx.Code, rm.PlayerUsernames())
		return map[string]any{"success": true}
	})

	// history:get
	io.OnEvent("/", "history:get", func(s socketio.Conn) map[string]any {
		ctx := s.Context().(*ConnCtx)
		entries, err := srv.coord.GetPlayerHistory(context.Background(), ctx.Username)
		if err != nil {
			log.Error().Err(err).Str("username", ctx.Username).Msg("failed to load history")
			return srv.fail(s, "Could not load history", "")
		}
		return map[string]any{"success": true, "history": entries}
	})

	// leaderboard:get
	io.OnEvent("/", "leaderboard:get", func(s socketio.Conn, payload struct {
		Count int `json:"count"`
	}) map[string]any {
		count := payload.Count
		if count <= 0 {
			count = 10
		}
		top, err := srv.stats.TopPlayers(context.Background(), count)
		if err != nil {
			log.Error().Err(err).Msg("failed to load leaderboard")
			return srv.fail(s, "Could not load leaderboard", "")
		}
		return map[string]any{"success": true, "leaderboard": top}
	})

	io.OnError("/", func(s socketio.Conn, e error) {
		log.Error().Str("sid", s.ID()).Err(e).Msg("socket error")
	})
	io.OnDisconnect("/", func(s socketio.Conn, reason string) {
		srv.dropConnection(s)
		log.Info().Str("sid", s.ID()).Str("reason", reason).Msg("socket disconnected")
	})

	go io.Serve()

	r.GET("/socket.io/*any", gin.WrapH(io))
	r.POST("/socket.io/*any", gin.WrapH(io))
	r.OPTIONS("/socket.io/*any", func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		c.Status(http.StatusNoContent)
	})

	return io
}

// dropConnection removes the player behind the socket from its room and
// tells the remaining members.
func (srv *Server) dropConnection(s socketio.Conn) {
	info := srv.players.RemovePlayer(s.ID())
	if info.RoomCode == "" {
		return
	}
	s.Leave(info.RoomCode)
	srv.removeMember(info.RoomCode, s)
	srv.emitRoomState(info.RoomCode)
}

// finishGame persists the game, broadcasts the results, and clears the
// room's swipe data. The Finished transition is the gate: only the caller
// that wins it proceeds, so concurrent last swipes (or the host's explicit
// finish racing the auto-finish) produce exactly one history entry and one
// stats update per player.
func (srv *Server) finishGame(code string, usernames []string) {
	rm, ok := srv.queries.GetRoomInfo(code)
	if !ok || !rm.TryFinish() {
		return
	}

	ctx := context.Background()
	results, err := srv.calc.CalculateAllCompatibilities(ctx, code, usernames)
	if err != nil {
		log.Error().Err(err).Str("code", code).Msg("failed to compute results")
		return
	}
	if err := srv.coord.SaveGameToHistory(ctx, code, usernames); err != nil {
		log.Error().Err(err).Str("code", code).Msg("failed to save game to history")
	}

	payload := map[string]any{
		"results":     results,
		"bestMatches": compat.GetBestMatchesForPlayers(results),
	}
	srv.mu.Lock()
	for _, c := range srv.members[code] {
		c.Emit("game:results", payload)
	}
	srv.mu.Unlock()

	if err := srv.coord.ClearRoomData(ctx, code); err != nil {
		log.Error().Err(err).Str("code", code).Msg("failed to clear room data")
	}
	log.Info().Str("code", code).Int("pairs", len(results)).Msg("game finished")
}

func (srv *Server) addMember(code string, c socketio.Conn) {
	srv.mu.Lock()
	defer srv.mu.Unlock()
	if srv.members[code] == nil {
		srv.members[code] = make(map[string]socketio.Conn)
	}
	srv.members[code][c.ID()] = c
}

func (srv *Server) removeMember(code string, c socketio.Conn) {
	srv.mu.Lock()
	defer srv.mu.Unlock()
	if m := srv.members[code]; m != nil {
		delete(m, c.ID())
		if len(m) == 0 {
			delete(srv.members, code)
		}
	}
}

// emitRoomState sends the current room snapshot to every member.
func (srv *Server) emitRoomState(code string) {
	rm, ok := srv.queries.GetRoomInfo(code)
	if !ok {
		return
	}
	payload := map[string]any{
		"roomCode": code,
		"host":     rm.Host(),
		"state":    string(rm.State()),
		"players":  rm.Players(),
	}
	srv.mu.Lock()
	defer srv.mu.Unlock()
	for _, c := range srv.members[code] {
		c.Emit("room:state", payload)
	}
}

func (srv *Server) fail(s socketio.Conn, message, state string) map[string]any {
	s.Emit("error", map[string]any{"message": message, "state": state})
	return map[string]any{"success": false, "message": message, "state": state}
}
