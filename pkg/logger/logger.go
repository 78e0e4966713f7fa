package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// 全局 logger，Init 之前使用 zap.NewNop 兜底
var log = zap.NewNop()

// Init 初始化全局日志
// env 为 "production" 时输出 JSON，否则输出彩色控制台格式
func Init(env string) *zap.Logger {
	var cfg zap.Config
	if env == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	logger, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		// 日志初始化失败没有降级余地，直接退出
		os.Exit(1)
	}

	log = logger
	return logger
}

// L 返回全局 logger
func L() *zap.Logger { return log }

func Info(msg string, fields ...zap.Field)  { log.Info(msg, fields...) }
func Warn(msg string, fields ...zap.Field)  { log.Warn(msg, fields...) }
func Error(msg string, fields ...zap.Field) { log.Error(msg, fields...) }
func Debug(msg string, fields ...zap.Field) { log.Debug(msg, fields...) }

// Sync 刷出缓冲日志，进程退出前调用
func Sync() { _ = log.Sync() }
