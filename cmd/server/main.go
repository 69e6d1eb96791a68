/*
 * Copyright (c) 2025, OpenIAM LLC. (http://www.openiam.com).
 *
 * OpenIAM LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package main

import (
	"context"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"syscall"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/openiam/identity-registry-service/internal/system/config"
	"github.com/openiam/identity-registry-service/internal/system/constants"
	"github.com/openiam/identity-registry-service/internal/system/database/provider"
	"github.com/openiam/identity-registry-service/internal/system/log"
	"github.com/openiam/identity-registry-service/internal/system/managers"
	"github.com/openiam/identity-registry-service/internal/system/schedulers"
	"github.com/openiam/identity-registry-service/internal/system/workers"
)

const configFile = "repository/conf/deployment.yaml"
const schemaFile = "dbscripts/postgres.sql"

func main() {

	irsHome := getIRSHome()

	envFiles, _ := filepath.Glob(filepath.Join(irsHome, "config", "*.env"))
	_ = godotenv.Load(envFiles...)

	irsConfig, err := config.LoadConfig(irsHome, configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := config.InitializeIRSRuntime(irsHome, irsConfig); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize runtime configuration: %v\n", err)
		os.Exit(1)
	}

	if err := log.Init(irsConfig.Log.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	logger := log.GetLogger()

	initDatabase(irsHome)

	// Start the background scan queue before anything can enqueue.
	workers.StartDuplicateScanWorker()
	if err := schedulers.StartDuplicateScanScheduler(); err != nil {
		logger.Fatal("Failed to start the duplicate scan scheduler.", log.Error(err))
	}

	serverAddr := fmt.Sprintf("%s:%d", irsConfig.Addr.Host, irsConfig.Addr.Port)
	mux := initMultiplexer()
	server := &http.Server{Handler: enableCORS(mux)}

	ln, err := net.Listen("tcp", serverAddr)
	if err != nil {
		logger.Fatal("Failed to start listener.", log.Error(err))
	}
	logger.Info("Identity registry service started on: " + serverAddr)

	go func() {
		if err := server.Serve(ln); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to serve requests.", log.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("Shutting down identity registry service.")
	schedulers.StopDuplicateScanScheduler()
	if err := server.Shutdown(context.Background()); err != nil {
		logger.Error("Failed to shut down the server cleanly.", log.Error(err))
	}
}

// initDatabase verifies connectivity and applies the idempotent schema script.
func initDatabase(irsHome string) {

	logger := log.GetLogger()

	dbClient, err := provider.NewDBProvider().GetDBClient()
	if err != nil {
		logger.Fatal("Failed to connect to the database.", log.Error(err))
	}
	defer dbClient.Close()

	if err := dbClient.InitDatabase(irsHome, schemaFile); err != nil {
		logger.Fatal("Failed to initialize the database schema.", log.Error(err))
	}
}

// initMultiplexer initializes the HTTP multiplexer and registers the services.
func initMultiplexer() *http.ServeMux {

	mux := http.NewServeMux()
	serviceManager := managers.NewServiceManager(mux)

	if err := serviceManager.RegisterServices(constants.ApiBasePath); err != nil {
		log.GetLogger().Fatal("Failed to register the services.", log.Error(err))
	}

	return mux
}

func enableCORS(next http.Handler) http.Handler {

	allowedOrigins := config.GetIRSRuntime().Config.Auth.CORSAllowedOrigins
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && (slices.Contains(allowedOrigins, "*") || slices.Contains(allowedOrigins, origin)) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, PATCH")
			w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
			w.Header().Set("Access-Control-Allow-Credentials", "true")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func getIRSHome() string {

	projectHomeFlag := flag.String("irsHome", "", "Path to the identity registry service home directory")
	flag.Parse()

	if *projectHomeFlag != "" {
		return *projectHomeFlag
	}

	dir, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to get current working directory: %v\n", err)
		os.Exit(1)
	}
	return dir
}
