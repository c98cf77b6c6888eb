package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	zerologlog "github.com/rs/zerolog/log"

	"github.com/swipedeck/swipedeck/internal/compat"
	"github.com/swipedeck/swipedeck/internal/config"
	"github.com/swipedeck/swipedeck/internal/history"
	"github.com/swipedeck/swipedeck/internal/player"
	"github.com/swipedeck/swipedeck/internal/room"
	"github.com/swipedeck/swipedeck/internal/statement"
	"github.com/swipedeck/swipedeck/internal/stats"
	"github.com/swipedeck/swipedeck/internal/swipe"
	"github.com/swipedeck/swipedeck/internal/ws"
)

const version = "v1.0.0-dev"

func main() {
	var (
		showHelp    = flag.Bool("help", false, "Show help message")
		showVersion = flag.Bool("version", false, "Show version information")
		portFlag    = flag.String("port", "", "Port to listen on (overrides PORT env var)")
	)
	flag.BoolVar(showHelp, "h", false, "Show help message (shorthand)")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	flag.Parse()

	if *showHelp {
		fmt.Printf(`SwipeDeck - Multiplayer swipe compatibility game

Usage: %s [options]

Options:
  -h, --help      Show this help message
  -v, --version   Show version information
  --port PORT     Port to listen on (default: 8080 or PORT env var)

Environment Variables:
  PORT                 Port to listen on (default: 8080)
  STORAGE              Storage backend: "memory" or "redis" (default: memory)
  REDIS_ADDR           Redis address (default: localhost:6379)
  REDIS_PASSWORD       Redis password (optional)
  MAX_PLAYERS          Players per room (default: 4)
  STATEMENTS_PER_GAME  Statements sampled per game (default: 10)
  CLEANUP_INTERVAL     Empty-room sweep interval (default: 30m)
  ADMIN_USER           Admin interface username for basic auth
  ADMIN_PASS           Admin interface password for basic auth

Visit http://localhost:8080/health after starting the server.
`, os.Args[0])
		return
	}

	if *showVersion {
		fmt.Printf("SwipeDeck %s\n", version)
		return
	}

	// zerolog setup (human-friendly console)
	zerolog.TimeFieldFormat = time.RFC3339
	cw := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	zerologlog.Logger = zerologlog.Output(cw)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if *portFlag != "" {
		cfg.Port = *portFlag
	}

	// Gin setup with custom logger (skip /socket.io noise)
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(func(c *gin.Context) {
		start := time.Now()
		c.Next()
		path := c.Request.URL.Path
		if strings.HasPrefix(path, "/socket.io") {
			return
		}
		status := c.Writer.Status()
		dur := time.Since(start)
		zerologlog.Info().Str("path", path).Int("status", status).Dur("dur", dur).Msg("http")
	})

	// Healthcheck
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true, "time": time.Now().UTC()})
	})

	// Storage backends
	catalog := statement.DefaultCatalog()
	var (
		swipeStore swipe.Store
		histStore  history.Store
		statsSink  stats.Sink
	)
	switch cfg.Storage {
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
		swipeStore = swipe.NewRedisStore(client, catalog)
		histStore = history.NewRedisStore(client)
		statsSink = stats.NewRedisSink(client)
		zerologlog.Info().Str("addr", cfg.RedisAddr).Msg("using redis storage")
	default:
		swipeStore = swipe.NewMemoryStore(catalog)
		histStore = history.NewMemoryStore()
		statsSink = stats.NewMemorySink()
		zerologlog.Info().Msg("using in-memory storage")
	}

	// Core services
	rooms := room.NewRepository()
	roomMgr := room.NewManager(rooms, room.NewCodeGenerator(), cfg.MaxPlayers)
	mappings := player.NewMappingRepository()
	playerMgr := player.NewManager(rooms, mappings, roomMgr)
	queries := player.NewQueryService(rooms, mappings)
	calc := compat.NewCalculator(swipeStore)
	coord := compat.NewCoordinator(swipeStore, calc, catalog, histStore, statsSink)

	// Socket hub
	sock := ws.New(playerMgr, queries, coord, calc, statsSink, cfg)
	io := sock.Mount(r)
	defer io.Close()

	// Periodic empty-room sweep
	go func() {
		ticker := time.NewTicker(cfg.CleanupInterval)
		defer ticker.Stop()
		for range ticker.C {
			if count := roomMgr.SweepEmptyRooms(); count > 0 {
				zerologlog.Info().Int("count", count).Msg("swept empty rooms")
			}
		}
	}()

	// Read API
	api := r.Group("/api")
	{
		api.GET("/rooms/:code", func(c *gin.Context) {
			rm, ok := queries.GetRoomInfo(c.Param("code"))
			if !ok {
				c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
				return
			}
			c.JSON(http.StatusOK, gin.H{
				"roomCode":   rm.Code,
				"host":       rm.Host(),
				"state":      string(rm.State()),
				"maxPlayers": rm.MaxPlayers,
				"players":    rm.Players(),
			})
		})
		api.GET("/rooms/:code/players", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"players": queries.GetRoomPlayerUsernames(c.Param("code"))})
		})
		api.GET("/statements/topics", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"topics": catalog.Topics()})
		})
		api.GET("/history/:username", func(c *gin.Context) {
			entries, err := coord.GetPlayerHistory(c.Request.Context(), c.Param("username"))
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load history"})
				return
			}
			c.JSON(http.StatusOK, gin.H{"history": entries})
		})
		api.GET("/leaderboard", func(c *gin.Context) {
			top, err := statsSink.TopPlayers(c.Request.Context(), 10)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load leaderboard"})
				return
			}
			c.JSON(http.StatusOK, gin.H{"leaderboard": top})
		})
	}

	// Admin route behind basic auth
	if cfg.AdminUser != "" && cfg.AdminPass != "" {
		auth := gin.BasicAuth(gin.Accounts{cfg.AdminUser: cfg.AdminPass})
		r.GET("/api/admin/rooms", auth, func(c *gin.Context) {
			all := rooms.GetAllRooms()
			out := make([]gin.H, 0, len(all))
			for _, rm := range all {
				out = append(out, gin.H{
					"roomCode": rm.Code,
					"host":     rm.Host(),
					"state":    string(rm.State()),
					"players":  rm.PlayerUsernames(),
				})
			}
			c.JSON(http.StatusOK, gin.H{"rooms": out})
		})
	}

	log.Printf("listening on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
