// Package logger provides structured logging for the ChaosRegistry platform,
// backed by zerolog.
//
// Services initialize the global logger once from config:
//
//	logger.Init(cfg.Logging)
//	logger.Info("service started", logger.Fields("port", 8080))
//
// Components derive tagged loggers with WithComponent:
//
//	log := logger.WithComponent("oauth")
package logger
