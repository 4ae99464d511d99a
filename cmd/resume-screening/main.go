package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"resume-screening-go/internal/api/handler"
	"resume-screening-go/internal/api/router"
	"resume-screening-go/internal/config"
	"resume-screening-go/internal/constants"
	"resume-screening-go/internal/logger"
	"resume-screening-go/internal/parser"
	"resume-screening-go/internal/screening"
	"resume-screening-go/internal/similarity"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/spf13/pflag"

	glog "github.com/cloudwego/hertz/pkg/common/hlog"
	hertzadapter "github.com/hertz-contrib/logger/zerolog"
)

var (
	version     = "1.0.0"            //nolint:gochecknoglobals
	serviceName = "resume-screening" //nolint:gochecknoglobals
)

func main() {
	var configPath string
	pflag.StringVarP(&configPath, "config", "c", "", "Path to config file")
	pflag.Parse()

	// 1. 加载配置文件
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	// 2. 初始化日志系统
	initLogger(cfg)
	logger.Info().Str("config", configPath).Msg("配置加载成功")

	// 3. 初始化相似度计算器
	calc, closeCalc, err := buildCalculator(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("初始化相似度计算器失败")
	}
	defer closeCalc()

	// 预热非致命：Embedding服务暂不可用时仍可启动，由/ready暴露状态
	warmupCtx, cancelWarmup := context.WithTimeout(context.Background(), 15*time.Second)
	if err := similarity.Warmup(warmupCtx, calc); err != nil {
		logger.Warn().Err(err).Msg("相似度计算器预热失败")
	} else {
		logger.Info().Str("provider", cfg.Similarity.Provider).Msg("相似度计算器就绪")
	}
	cancelWarmup()

	// 4. 初始化PDF解析器和筛选器
	pdfExtractor := parser.NewTikaPDFExtractor(
		cfg.Tika.ServerURL,
		parser.WithTimeout(time.Duration(cfg.Tika.Timeout)*time.Second),
	)
	screener := screening.NewScreener(cfg, calc)
	screeningHandler := handler.NewScreeningHandler(cfg, pdfExtractor, screener, calc)

	// 5. 创建HTTP服务器
	h := server.Default(
		server.WithHostPorts(cfg.Server.Address),
		server.WithMaxRequestBodySize(constants.MaxRequestBody),
	)

	// 6. 注册路由
	router.RegisterRoutes(h, cfg, screeningHandler)

	// 7. 启动HTTP服务器
	go func() {
		logger.Info().Str("address", cfg.Server.Address).Msg("HTTP服务器启动")
		if err := h.Run(); err != nil {
			logger.Fatal().Err(err).Msg("启动HTTP服务器失败")
		}
	}()

	// 8. 等待终止信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("接收到终止信号，正在优雅退出...")

	// 9. 优雅关闭HTTP服务器
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := h.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("服务器关闭失败")
	}

	logger.Info().Msg("优雅退出完成")
}

// buildCalculator 按配置构建相似度计算器，并视情况包上Redis缓存
func buildCalculator(cfg *config.Config) (similarity.Calculator, func(), error) {
	var base similarity.Calculator
	var err error

	switch cfg.Similarity.Provider {
	case "static":
		base = similarity.NewStaticCalculator(cfg.Similarity.StaticScore)
	default:
		base, err = similarity.NewDashScopeCalculator(cfg.Similarity.Embedding)
		if err != nil {
			return nil, nil, err
		}
	}

	if !cfg.Redis.Enabled {
		return base, func() {}, nil
	}

	cached, err := similarity.NewCachedCalculator(base, &cfg.Redis)
	if err != nil {
		return nil, nil, fmt.Errorf("初始化相似度缓存失败: %w", err)
	}
	logger.Info().Str("address", cfg.Redis.Address).Msg("相似度得分缓存已启用")

	return cached, func() {
		if closeErr := cached.Close(); closeErr != nil {
			logger.Warn().Err(closeErr).Msg("关闭Redis连接失败")
		}
	}, nil
}

// initLogger 初始化zerolog并接管Hertz的内部日志
func initLogger(cfg *config.Config) {
	logger.Init(logger.Config{
		Level:        cfg.Logger.Level,
		Format:       cfg.Logger.Format,
		TimeFormat:   cfg.Logger.TimeFormat,
		ReportCaller: cfg.Logger.ReportCaller,
	})

	logger.Logger = logger.Logger.With().
		Str("app", serviceName).
		Str("version", version).
		Logger()

	// 设置 Hertz 的 glog
	glog.SetLogger(hertzadapter.From(logger.Logger))
}
