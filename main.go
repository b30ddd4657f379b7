package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"github.com/EAGLE605/SignX-sub007/internal/auth"
	"github.com/EAGLE605/SignX-sub007/internal/project"
	"github.com/EAGLE605/SignX-sub007/internal/repo"
	"github.com/EAGLE605/SignX-sub007/internal/sign/batch"
	"github.com/EAGLE605/SignX-sub007/internal/sign/catalog"
	"github.com/EAGLE605/SignX-sub007/internal/sign/envelope"
	"github.com/EAGLE605/SignX-sub007/internal/sign/foundation"
	"github.com/EAGLE605/SignX-sub007/internal/sign/loads"
	"github.com/EAGLE605/SignX-sub007/internal/sign/pole"
	"github.com/EAGLE605/SignX-sub007/internal/sign/report"
	"github.com/EAGLE605/SignX-sub007/internal/sign/wind"
)

var wg sync.WaitGroup

func CORS(mux *mux.Router) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		mux.ServeHTTP(w, r)
	})
}

// loadCatalog prefers the published AISC workbook when configured and falls
// back to the embedded subset.
func loadCatalog() *catalog.Catalog {
	if path := os.Getenv("CATALOG_XLSX"); path != "" {
		cat, err := catalog.LoadWorkbook(path)
		if err != nil {
			log.Fatalf("catalog workbook %s: %v", path, err)
		}
		log.Printf("catalog loaded from %s: %d sections", path, cat.Len())
		return cat
	}
	return catalog.Builtin()
}

func HandleList(mux *mux.Router, db *sql.DB) {
	store := repo.NewPostgres(db)
	err := godotenv.Load()
	if err != nil {
		log.Fatal("Error loading .env file")
	}
	tokenKey := os.Getenv("TOKEN_KEY")
	if tokenKey == "" {
		log.Fatal("TOKEN_KEY environment variable is not set")
	}

	authEnv := &auth.Authenv{JWTkey: []byte(tokenKey), Repo: store}
	limiter := auth.NewIPRateLimiter(1, 3)

	cat := loadCatalog()
	windH := &wind.Handler{}
	loadsH := &loads.Handler{}
	poleH := pole.NewHandler(cat)
	foundationH := &foundation.Handler{}
	batchH := batch.NewHandler(batch.NewRunner(cat))
	reportH := &report.Handler{}
	projectH := project.NewHandler(store)

	api := mux.PathPrefix("/api").Subrouter()
	api.Use(limiter.LimitMiddleware)

	api.HandleFunc("/login", authEnv.LoginHandler).Methods("POST")
	api.HandleFunc("/register", authEnv.RegisterHandler).Methods("POST")
	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"status":  "ok",
			"solvers": envelope.Versions(),
		})
	}).Methods("GET")

	secureApi := api.PathPrefix("/signage").Subrouter()
	secureApi.Use(authEnv.AuthMiddleware)

	secureApi.HandleFunc("/wind/pressure", windH.Pressure).Methods("POST")
	secureApi.HandleFunc("/wind/force", windH.Force).Methods("POST")
	secureApi.HandleFunc("/loads/derive", loadsH.Derive).Methods("POST")
	secureApi.HandleFunc("/sections/filter", poleH.Select).Methods("POST")
	secureApi.HandleFunc("/pole/analyze", poleH.Analyze).Methods("POST")
	secureApi.HandleFunc("/pole/cantilever", poleH.Cantilever).Methods("POST")
	secureApi.HandleFunc("/pole/double", poleH.Double).Methods("POST")
	secureApi.HandleFunc("/pole/autodesign", poleH.AutoDesign).Methods("POST")
	secureApi.HandleFunc("/footing/solve", foundationH.Footing).Methods("POST")
	secureApi.HandleFunc("/baseplate/check", foundationH.Baseplate).Methods("POST")
	secureApi.HandleFunc("/baseplate/auto", foundationH.AutoPlate).Methods("POST")
	secureApi.HandleFunc("/rebar/schedule", foundationH.Rebar).Methods("POST")
	secureApi.HandleFunc("/batch/solve", batchH.Solve).Methods("POST")
	secureApi.HandleFunc("/import/cabinets", batchH.ImportCabinets).Methods("POST")
	secureApi.HandleFunc("/report/pdf", reportH.Generate).Methods("POST")

	projects := api.PathPrefix("/projects").Subrouter()
	projects.Use(authEnv.AuthMiddleware)
	projects.HandleFunc("", projectH.Create).Methods("POST")
	projects.HandleFunc("", projectH.List).Methods("GET")
	projects.HandleFunc("/{id:[0-9]+}", projectH.Get).Methods("GET")
	projects.HandleFunc("/{id:[0-9]+}", projectH.Update).Methods("PATCH", "PUT")
	projects.HandleFunc("/{id:[0-9]+}", projectH.Delete).Methods("DELETE")
	projects.HandleFunc("/{id:[0-9]+}/jobs", projectH.EnqueueJob).Methods("POST")

	envelopes := api.PathPrefix("/envelopes").Subrouter()
	envelopes.Use(authEnv.AuthMiddleware)
	envelopes.HandleFunc("/{hash:[0-9a-f]{64}}", projectH.Envelope).Methods("GET")
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	db := repo.InitDB()
	defer db.Close()
	mux := mux.NewRouter()
	HandleList(mux, db)
	handler := CORS(mux)

	addr := os.Getenv("ADDR")
	if addr == "" {
		addr = ":8443"
	}
	server := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	certFile := os.Getenv("TLS_CERT")
	keyFile := os.Getenv("TLS_KEY")

	wg.Add(1)
	go func() {
		defer wg.Done()
		var err error
		if certFile != "" && keyFile != "" {
			log.Printf("Starting server on %s (TLS)", addr)
			err = server.ListenAndServeTLS(certFile, keyFile)
		} else {
			log.Printf("Starting server on %s", addr)
			err = server.ListenAndServe()
		}
		if err != nil && err != http.ErrServerClosed {
			log.Printf("Server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutdown signal received, closing active connections")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")

	wg.Wait()
}
