// Package router 注册HTTP路由和中间件
package router

import (
	"context"
	"errors"

	"resume-screening-go/internal/api/handler"
	"resume-screening-go/internal/config"
	"resume-screening-go/internal/logger"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/hertz-contrib/keyauth"
)

// RegisterRoutes 注册 API 路由
// 配置了api_key时，筛选接口启用X-API-Key鉴权；探针始终公开
func RegisterRoutes(h *server.Hertz, cfg *config.Config, screeningHandler *handler.ScreeningHandler) {
	h.GET("/health", screeningHandler.HandleHealth)
	h.GET("/ready", screeningHandler.HandleReady)

	api := h.Group("/api/v1")

	if cfg.Server.APIKey != "" {
		api.Use(keyauth.New(
			keyauth.WithKeyLookUp("header:X-API-Key", ""),
			keyauth.WithValidator(func(ctx context.Context, c *app.RequestContext, key string) (bool, error) {
				if key != cfg.Server.APIKey {
					return false, errors.New("无效的API Key")
				}
				return true, nil
			}),
		))
		logger.Info().Msg("筛选接口已启用API Key鉴权")
	}

	api.POST("/screening/rank", screeningHandler.HandleRank)
}
