package mazeapi

import (
	"context"
	"errors"
	"math/rand"
	"net/http"
	"strconv"

	"github.com/beka-birhanu/vinom-mazegen/api/identity"
	"github.com/beka-birhanu/vinom-mazegen/document"
	"github.com/beka-birhanu/vinom-mazegen/infrastruture/cache"
	"github.com/beka-birhanu/vinom-mazegen/preset"
	"github.com/beka-birhanu/vinom-mazegen/service"
	"github.com/beka-birhanu/vinom-mazegen/service/i"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	// SeedHeader carries the seed a maze was built from.
	SeedHeader = "X-Maze-Seed"

	jsonContentType = "application/json; charset=utf-8"
	randomSeedRange = 1_000_000_000
)

// Controller errors.
var (
	ErrMissingPresets = errors.New("maze controller requires presets")
	ErrMissingBuilder = errors.New("maze controller requires a builder")
)

// MazeController serves single builds, stored documents and batch runs.
type MazeController struct {
	presets       *preset.Registry
	builder       i.MazeBuilder
	cache         i.MazeCache
	reader        i.MazeReader
	batches       i.BatchRunner
	maxBatchCount int
	logger        logrus.FieldLogger
}

// Config holds the dependencies of a MazeController. Cache, Reader and
// Batches are optional; their routes or features are skipped when nil.
type Config struct {
	Presets       *preset.Registry
	Builder       i.MazeBuilder
	Cache         i.MazeCache
	Reader        i.MazeReader
	Batches       i.BatchRunner
	MaxBatchCount int
	Logger        logrus.FieldLogger
}

// NewMazeController initializes a MazeController.
func NewMazeController(c Config) (*MazeController, error) {
	if c.Presets == nil {
		return nil, ErrMissingPresets
	}
	if c.Builder == nil {
		return nil, ErrMissingBuilder
	}
	if c.Logger == nil {
		c.Logger = logrus.StandardLogger()
	}

	return &MazeController{
		presets:       c.Presets,
		builder:       c.Builder,
		cache:         c.Cache,
		reader:        c.Reader,
		batches:       c.Batches,
		maxBatchCount: c.MaxBatchCount,
		logger:        c.Logger,
	}, nil
}

// RegisterPublic registers public routes.
func (mc *MazeController) RegisterPublic(route *gin.RouterGroup) {
	route.GET("/presets", mc.listPresets)
	route.GET("/mazes/:difficulty", mc.buildMaze)
	if mc.reader != nil {
		route.GET("/documents/:id", mc.storedMaze)
	}
}

// RegisterProtected registers protected routes.
func (mc *MazeController) RegisterProtected(route *gin.RouterGroup) {
	if mc.batches != nil {
		route.POST("/batches", mc.runBatch)
	}
}

// listPresets returns every difficulty tier.
func (mc *MazeController) listPresets(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, PresetsResponse{Presets: mc.presets.All()})
}

// buildMaze builds one maze. Requests with an explicit seed and no custom id
// are deterministic and go through the cache.
func (mc *MazeController) buildMaze(ctx *gin.Context) {
	cfg, err := mc.presets.Lookup(ctx.Param("difficulty"))
	if err != nil {
		ctx.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	}

	seed := rand.Int63n(randomSeedRange)
	seedParam, seeded := ctx.GetQuery("seed")
	if seeded {
		seed, err = strconv.ParseInt(seedParam, 10, 64)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: "seed must be an integer"})
			return
		}
	}
	id := ctx.Query("id")

	var payload []byte
	if seeded && id == "" && mc.cache != nil {
		payload, err = mc.cachedBuild(ctx.Request.Context(), cfg, seed)
	} else {
		payload, err = mc.build(cfg, seed, id)
	}
	if err != nil {
		mc.logger.WithFields(logrus.Fields{"difficulty": cfg.Name, "seed": seed}).WithError(err).Error("building maze")
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{Error: "maze generation failed"})
		return
	}

	ctx.Header(SeedHeader, strconv.FormatInt(seed, 10))
	ctx.Data(http.StatusOK, jsonContentType, payload)
}

// build runs the generator and encodes the document.
func (mc *MazeController) build(cfg preset.Config, seed int64, id string) ([]byte, error) {
	doc, err := mc.builder.Build(cfg, seed, id)
	if err != nil {
		return nil, err
	}
	return document.Marshal(doc)
}

// cachedBuild serves a seeded build from the cache, building it under the
// key's lock on a miss. Cache failures fall back to a direct build.
func (mc *MazeController) cachedBuild(ctx context.Context, cfg preset.Config, seed int64) ([]byte, error) {
	key := cache.Key(cfg, seed)
	logger := mc.logger.WithField("key", key)

	if payload, ok, err := mc.cache.Get(ctx, key); err == nil && ok {
		return payload, nil
	} else if err != nil {
		logger.WithError(err).Warn("reading maze cache")
		return mc.build(cfg, seed, "")
	}

	unlock, err := mc.cache.Lock(ctx, key)
	if err != nil {
		logger.WithError(err).Warn("locking maze cache")
		return mc.build(cfg, seed, "")
	}
	defer unlock()

	// Another instance may have filled the entry while we waited.
	if payload, ok, err := mc.cache.Get(ctx, key); err == nil && ok {
		return payload, nil
	}

	payload, err := mc.build(cfg, seed, "")
	if err != nil {
		return nil, err
	}
	if err := mc.cache.Set(ctx, key, payload); err != nil {
		logger.WithError(err).Warn("writing maze cache")
	}
	return payload, nil
}

// storedMaze returns a persisted document by id.
func (mc *MazeController) storedMaze(ctx *gin.Context) {
	rec, err := mc.reader.ByID(ctx.Request.Context(), ctx.Param("id"))
	if errors.Is(err, i.ErrMazeNotFound) {
		ctx.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	}
	if err != nil {
		mc.logger.WithField("id", ctx.Param("id")).WithError(err).Error("loading stored maze")
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not load maze"})
		return
	}

	payload, err := document.Marshal(rec.Document)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not encode maze"})
		return
	}
	ctx.Header(SeedHeader, strconv.FormatInt(rec.Seed, 10))
	ctx.Data(http.StatusOK, jsonContentType, payload)
}

// runBatch generates and stores a batch of mazes.
func (mc *MazeController) runBatch(ctx *gin.Context) {
	var request BatchRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	if mc.maxBatchCount > 0 && request.Count > mc.maxBatchCount {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: "count exceeds the batch limit of " + strconv.Itoa(mc.maxBatchCount)})
		return
	}

	result, err := mc.batches.Run(ctx.Request.Context(), i.BatchRequest{
		Difficulty: request.Difficulty,
		Count:      request.Count,
		Seed:       request.Seed,
	})
	switch {
	case errors.Is(err, preset.ErrUnknownDifficulty):
		ctx.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	case errors.Is(err, service.ErrInvalidCount):
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	case err != nil:
		mc.logger.WithFields(logrus.Fields{
			"difficulty": request.Difficulty,
			"subject":    ctx.GetString(identity.ContextSubject),
		}).WithError(err).Error("running batch")
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{Error: "batch generation failed"})
		return
	}

	ctx.JSON(http.StatusCreated, result)
}
