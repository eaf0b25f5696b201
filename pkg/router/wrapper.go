package router

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pokequest-lab/backend/pkg/errorx"
	"github.com/pokequest-lab/backend/pkg/xcontext"
)

func wrapHandler[Request, Response any](
	router *Router, method string, handler HandlerFunc[Request, Response],
) gin.HandlerFunc {
	return func(ginCtx *gin.Context) {
		ctx := xcontext.WithHTTPRequest(router.ctx, ginCtx.Request)
		ctx = xcontext.WithHTTPWriter(ctx, ginCtx.Writer)

		ctx = func(ctx context.Context) context.Context {
			for _, m := range router.befores {
				newCtx, err := m(ctx)
				if err != nil {
					return xcontext.WithError(ctx, err)
				}

				// Middlewares without a context change return nil.
				if newCtx != nil {
					ctx = newCtx
				}
			}

			var req Request
			var err error
			switch method {
			case http.MethodGet:
				err = ginCtx.ShouldBindQuery(&req)
			default:
				err = ginCtx.ShouldBindJSON(&req)
			}
			if err != nil {
				return xcontext.WithError(ctx,
					errorx.New(errorx.BadRequest, "Cannot bind the request"))
			}

			resp, err := handler(ctx, &req)
			if err != nil {
				return xcontext.WithError(ctx, err)
			}

			return xcontext.WithResponse(ctx, resp)
		}(ctx)

		if xcontext.Error(ctx) == nil {
			for _, m := range router.afters {
				newCtx, err := m(ctx)
				if err != nil {
					ctx = xcontext.WithError(ctx, err)
					break
				}

				if newCtx != nil {
					ctx = newCtx
				}
			}
		}

		for _, closer := range router.closers {
			closer(ctx)
		}
	}
}
