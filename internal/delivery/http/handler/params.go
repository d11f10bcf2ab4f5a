package handler

import (
	"errors"
	"strconv"
	"strings"

	"kks-tracker/internal/delivery/http/middleware"
	"kks-tracker/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

var errBadID = errors.New("id must be a positive integer")

func paramID(c fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, errBadID
	}
	return id, nil
}

// queryInt64 returns 0 for an absent parameter.
func queryInt64(c fiber.Ctx, key string) (int64, error) {
	s := strings.TrimSpace(c.Query(key))
	if s == "" {
		return 0, nil
	}
	return strconv.ParseInt(s, 10, 64)
}

// parseIDList splits a comma separated list, skipping entries that are not
// integers.
func parseIDList(s string) []int64 {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]int64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil {
			continue
		}
		out = append(out, v)
	}
	return out
}

func callerFrom(c fiber.Ctx) (usecase.Caller, error) {
	id, role, ok := middleware.Caller(c)
	if !ok {
		return usecase.Caller{}, middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	return usecase.Caller{WorkerID: id, Role: role}, nil
}
