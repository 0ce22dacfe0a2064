package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/baseball-sim/pitchsim/internal/ballpark"
	"github.com/baseball-sim/pitchsim/internal/dataloader"
	"github.com/baseball-sim/pitchsim/internal/debuglog"
	"github.com/baseball-sim/pitchsim/internal/environment"
	"github.com/baseball-sim/pitchsim/internal/game"
	"github.com/baseball-sim/pitchsim/internal/simconfig"
	"github.com/baseball-sim/pitchsim/internal/umpire"
)

// Server is the HTTP surface over the simulation engine: it accepts a
// matchup, runs a batch of games, and serves back progress and results.
// Shape follows the teacher's Server/Config split in the original
// cmd/simengine/main.go, rebuilt around game.RunBatch instead of
// simulation.SimulationEngine.
type Server struct {
	db         *pgxpool.Pool
	loader     *dataloader.Store
	router     *mux.Router
	httpServer *http.Server
	config     *Config
	cfg        simconfig.Config

	mu         sync.RWMutex
	activeRuns map[string]*RunStatus
}

// Config is process-level runtime configuration: ports, database
// coordinates, and worker count. The domain calibration (arsenal, park,
// command noise) lives in simconfig.Config and is loaded separately.
type Config struct {
	Port           string
	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBName         string
	Workers        int
	SimulationRuns int
	CalibrationPath string
	DebugLogPath   string
}

// RunStatus tracks one in-flight or completed batch of simulated games.
type RunStatus struct {
	RunID         string
	GameID        string
	TotalRuns     int
	CompletedRuns int
	Status        string
	StartTime     time.Time
	CompletedTime *time.Time
	Results       []game.Result
}

type SimulationRequest struct {
	GameID         string `json:"game_id"`
	HomeTeamID     string `json:"home_team_id"`
	AwayTeamID     string `json:"away_team_id"`
	Season         int    `json:"season"`
	SimulationRuns int    `json:"simulation_runs,omitempty"`
}

type SimulationResponse struct {
	RunID     string    `json:"run_id"`
	Status    string    `json:"status"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

type SimulationStatus struct {
	RunID         string  `json:"run_id"`
	GameID        string  `json:"game_id"`
	Status        string  `json:"status"`
	TotalRuns     int     `json:"total_runs"`
	CompletedRuns int     `json:"completed_runs"`
	Progress      float64 `json:"progress"`
}

type SimulationResult struct {
	RunID              string  `json:"run_id"`
	HomeWinProbability float64 `json:"home_win_probability"`
	AwayWinProbability float64 `json:"away_win_probability"`
	ExpectedHomeScore  float64 `json:"expected_home_score"`
	ExpectedAwayScore  float64 `json:"expected_away_score"`
	TotalSimulations   int     `json:"total_simulations"`
	AveragePitches     float64 `json:"average_pitches"`
}

func NewConfig() *Config {
	workers := runtime.NumCPU()
	if envWorkers := os.Getenv("WORKERS"); envWorkers != "" {
		fmt.Sscanf(envWorkers, "%d", &workers)
	}

	simulationRuns := 1000
	if envRuns := os.Getenv("SIMULATION_RUNS"); envRuns != "" {
		fmt.Sscanf(envRuns, "%d", &simulationRuns)
	}

	return &Config{
		Port:            getEnv("PORT", "8081"),
		DBHost:          getEnv("DB_HOST", "localhost"),
		DBPort:          getEnv("DB_PORT", "5432"),
		DBUser:          getEnv("DB_USER", "baseball_user"),
		DBPassword:      getEnv("DB_PASSWORD", "baseball_pass"),
		DBName:          getEnv("DB_NAME", "baseball_sim"),
		Workers:         workers,
		SimulationRuns:  simulationRuns,
		CalibrationPath: getEnv("CALIBRATION_PATH", ""),
		DebugLogPath:    getEnv("PITCH_DEBUG_LOG", ""),
	}
}

func NewServer(config *Config) (*Server, error) {
	dbURL := fmt.Sprintf("postgresql://%s:%s@%s:%s/%s",
		config.DBUser, config.DBPassword, config.DBHost, config.DBPort, config.DBName)

	dbConfig, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse db config: %w", err)
	}
	dbConfig.MaxConns = int32(config.Workers * 2)
	dbConfig.MinConns = int32(config.Workers / 2)
	dbConfig.MaxConnLifetime = time.Hour
	dbConfig.MaxConnIdleTime = 30 * time.Minute

	db, err := pgxpool.NewWithConfig(context.Background(), dbConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.Ping(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	cfg, err := simconfig.Load(config.CalibrationPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load calibration: %w", err)
	}

	s := &Server{
		db:         db,
		loader:     dataloader.New(db),
		config:     config,
		cfg:        cfg,
		router:     mux.NewRouter(),
		activeRuns: make(map[string]*RunStatus),
	}

	s.setupRoutes()
	return s, nil
}

func (s *Server) setupRoutes() {
	s.router.HandleFunc("/health", s.healthHandler).Methods("GET")
	s.router.HandleFunc("/simulate", s.simulateHandler).Methods("POST")
	s.router.HandleFunc("/simulation/{id}/status", s.simulationStatusHandler).Methods("GET")
	s.router.HandleFunc("/simulation/{id}/result", s.simulationResultHandler).Methods("GET")

	s.router.Use(s.loggingMiddleware)
	s.router.Use(s.recoveryMiddleware)
}

func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:         ":" + s.config.Port,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	log.Info("starting simulation engine", "port", s.config.Port, "workers", s.config.Workers)
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	log.Info("shutting down simulation engine")
	s.db.Close()
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	health := map[string]interface{}{
		"status":   "healthy",
		"time":     time.Now().UTC(),
		"workers":  s.config.Workers,
		"database": "connected",
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.db.Ping(ctx); err != nil {
		health["database"] = "disconnected"
		health["status"] = "unhealthy"
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	writeJSON(w, health)
}

func (s *Server) simulateHandler(w http.ResponseWriter, r *http.Request) {
	var req SimulationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.HomeTeamID == "" || req.AwayTeamID == "" {
		http.Error(w, "home_team_id and away_team_id are required", http.StatusBadRequest)
		return
	}

	runs := req.SimulationRuns
	if runs <= 0 {
		runs = s.config.SimulationRuns
	}
	season := req.Season
	if season == 0 {
		season = time.Now().Year()
	}

	homeLineup, homePitcher, err := s.loader.LoadTeam(r.Context(), req.HomeTeamID, season, s.cfg.Arsenal)
	if err != nil {
		log.Error("failed to load home roster", "team", req.HomeTeamID, "err", err)
		http.Error(w, "failed to load home roster", http.StatusInternalServerError)
		return
	}
	awayLineup, awayPitcher, err := s.loader.LoadTeam(r.Context(), req.AwayTeamID, season, s.cfg.Arsenal)
	if err != nil {
		log.Error("failed to load away roster", "team", req.AwayTeamID, "err", err)
		http.Error(w, "failed to load away roster", http.StatusInternalServerError)
		return
	}

	park, err := ballpark.New(s.cfg.Park, 0, "grass")
	if err != nil {
		log.Error("failed to build park geometry", "err", err)
		http.Error(w, "invalid park geometry", http.StatusInternalServerError)
		return
	}
	parkMeta := environment.Park{Name: s.cfg.Park.Name, RoofType: "open", Altitude: 0}

	runID := uuid.New().String()
	status := &RunStatus{
		RunID:     runID,
		GameID:    req.GameID,
		TotalRuns: runs,
		Status:    "running",
		StartTime: time.Now().UTC(),
	}
	s.mu.Lock()
	s.activeRuns[runID] = status
	s.mu.Unlock()

	go s.runBatch(runID, game.Team{Name: req.HomeTeamID, Pitcher: homePitcher, Lineup: homeLineup},
		game.Team{Name: req.AwayTeamID, Pitcher: awayPitcher, Lineup: awayLineup}, park, parkMeta, runs)

	writeJSON(w, SimulationResponse{
		RunID:     runID,
		Status:    "started",
		Message:   fmt.Sprintf("simulation started with %d runs", runs),
		CreatedAt: time.Now().UTC(),
	})
}

func (s *Server) runBatch(runID string, home, away game.Team, park *ballpark.Park, parkMeta environment.Park, runs int) {
	var sink *debuglog.Sink
	if s.config.DebugLogPath != "" {
		f, err := os.OpenFile(s.config.DebugLogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			log.Warn("failed to open pitch debug log", "path", s.config.DebugLogPath, "err", err)
		} else {
			defer f.Close()
			sink = debuglog.NewSink(f)
		}
	}

	results, err := game.RunBatch(context.Background(), game.BatchRequest{
		GameIDPrefix: runID,
		Home:         home,
		Away:         away,
		Config:       s.cfg,
		Park:         park,
		ParkMeta:     parkMeta,
		Umpire:       umpire.DefaultTendencies(),
		BaseSeed:     int64(uuid.New().ID()),
		Count:        runs,
		Workers:      s.config.Workers,
		Sink:         sink,
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	status := s.activeRuns[runID]
	if status == nil {
		return
	}
	now := time.Now().UTC()
	status.CompletedTime = &now
	if err != nil {
		log.Error("batch run failed", "run_id", runID, "err", err)
		status.Status = "failed"
		return
	}
	status.Results = results
	status.CompletedRuns = len(results)
	status.Status = "completed"
}

func (s *Server) simulationStatusHandler(w http.ResponseWriter, r *http.Request) {
	runID := mux.Vars(r)["id"]

	s.mu.RLock()
	status, exists := s.activeRuns[runID]
	s.mu.RUnlock()
	if !exists {
		http.Error(w, "simulation not found", http.StatusNotFound)
		return
	}

	progress := 0.0
	if status.TotalRuns > 0 {
		progress = float64(status.CompletedRuns) / float64(status.TotalRuns)
	}
	writeJSON(w, SimulationStatus{
		RunID:         status.RunID,
		GameID:        status.GameID,
		Status:        status.Status,
		TotalRuns:     status.TotalRuns,
		CompletedRuns: status.CompletedRuns,
		Progress:      progress,
	})
}

func (s *Server) simulationResultHandler(w http.ResponseWriter, r *http.Request) {
	runID := mux.Vars(r)["id"]

	s.mu.RLock()
	status, exists := s.activeRuns[runID]
	s.mu.RUnlock()
	if !exists {
		http.Error(w, "simulation not found", http.StatusNotFound)
		return
	}
	if status.Status != "completed" {
		http.Error(w, "simulation not yet complete", http.StatusAccepted)
		return
	}

	writeJSON(w, aggregateResults(status.RunID, status.Results))
}

// aggregateResults reduces the per-game results of a batch into the
// summary the teacher's GetRunResult exposed: win probabilities, expected
// scores, and average pitch count.
func aggregateResults(runID string, results []game.Result) SimulationResult {
	n := len(results)
	if n == 0 {
		return SimulationResult{RunID: runID}
	}

	var homeWins, awayWins, homeScoreSum, awayScoreSum, pitchSum int
	for _, r := range results {
		if r.Winner == "home" {
			homeWins++
		} else if r.Winner == "away" {
			awayWins++
		}
		homeScoreSum += r.HomeScore
		awayScoreSum += r.AwayScore
		pitchSum += r.TotalPitches
	}

	return SimulationResult{
		RunID:              runID,
		HomeWinProbability: float64(homeWins) / float64(n),
		AwayWinProbability: float64(awayWins) / float64(n),
		ExpectedHomeScore:  float64(homeScoreSum) / float64(n),
		ExpectedAwayScore:  float64(awayScoreSum) / float64(n),
		TotalSimulations:   n,
		AveragePitches:     float64(pitchSum) / float64(n),
	}
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lrw := &loggingResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(lrw, r)
		log.Info("request", "method", r.Method, "path", r.RequestURI, "status", lrw.statusCode, "duration", time.Since(start))
	})
}

func (s *Server) recoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				log.Error("panic recovered", "err", err)
				http.Error(w, "internal server error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

func writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error("failed to encode response", "err", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	config := NewConfig()

	server, err := NewServer(config)
	if err != nil {
		log.Fatal("failed to create server", "err", err)
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			log.Fatal("server shutdown failed", "err", err)
		}
		log.Info("server shutdown complete")
	}()

	if err := server.Start(); err != nil && err != http.ErrServerClosed {
		log.Fatal("server failed to start", "err", err)
	}
}
