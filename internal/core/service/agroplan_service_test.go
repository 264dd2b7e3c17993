package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/agriconnect/marketplace-api/internal/core/domain"
	"github.com/agriconnect/marketplace-api/internal/core/ports"
)

type stubRecommender struct {
	plan  *ports.RecommendationPlan
	err   error
	calls int
}

func (r *stubRecommender) Generate(_ context.Context, _ ports.AnalyzeInput) (*ports.RecommendationPlan, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	return r.plan, nil
}

type stubPlanCache struct {
	plans  map[string]*ports.RecommendationPlan
	getErr error
	setErr error
}

func newStubPlanCache() *stubPlanCache {
	return &stubPlanCache{plans: make(map[string]*ports.RecommendationPlan)}
}

func (c *stubPlanCache) Get(_ context.Context, key string) (*ports.RecommendationPlan, error) {
	if c.getErr != nil {
		return nil, c.getErr
	}
	return c.plans[key], nil
}

func (c *stubPlanCache) Set(_ context.Context, key string, plan *ports.RecommendationPlan) error {
	if c.setErr != nil {
		return c.setErr
	}
	c.plans[key] = plan
	return nil
}

type stubAgroplanRepo struct {
	rows    []*domain.AgroplanRecord
	saveErr error
}

func (r *stubAgroplanRepo) Save(_ context.Context, rec *domain.AgroplanRecord) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	clone := *rec
	r.rows = append(r.rows, &clone)
	return nil
}

func (r *stubAgroplanRepo) ListForUser(_ context.Context, userID string) ([]*domain.AgroplanRecord, error) {
	var out []*domain.AgroplanRecord
	for i := len(r.rows) - 1; i >= 0; i-- {
		if r.rows[i].UserID == userID {
			clone := *r.rows[i]
			out = append(out, &clone)
		}
	}
	return out, nil
}

func gatewayPlan() *ports.RecommendationPlan {
	return &ports.RecommendationPlan{
		Recommendations: []ports.CropRecommendation{
			{Crop: "Maize", Suitability: "high", BestPlantingSeason: "Long rains"},
		},
		RotationSchedule: []ports.RotationEntry{
			{Season: "Long rains", Crops: []string{"Maize", "Beans"}},
		},
		SustainabilityScore: 85,
	}
}

func TestAgroplanService_Analyze_Validation(t *testing.T) {
	svc := NewAgroplanService(&stubRecommender{}, newStubPlanCache(), &stubAgroplanRepo{}, noplog())

	if _, err := svc.Analyze(context.Background(), ports.AnalyzeInput{Location: "Nakuru"}); err != domain.ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput for missing soil type, got %v", err)
	}
	if _, err := svc.Analyze(context.Background(), ports.AnalyzeInput{SoilType: "loam"}); err != domain.ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput for missing location, got %v", err)
	}
}

func TestAgroplanService_Analyze_GatewaySuccess(t *testing.T) {
	rec := &stubRecommender{plan: gatewayPlan()}
	cache := newStubPlanCache()
	repo := &stubAgroplanRepo{}
	svc := NewAgroplanService(rec, cache, repo, noplog())

	plan, err := svc.Analyze(context.Background(), ports.AnalyzeInput{
		UserID: "u1", SoilType: "loam", Location: "Nakuru", PreviousCrops: "beans",
	})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if plan.SustainabilityScore != 85 || plan.Recommendations[0].Crop != "Maize" {
		t.Fatalf("gateway plan not returned: %+v", plan)
	}
	if len(cache.plans) != 1 {
		t.Fatalf("plan should be cached, got %d entries", len(cache.plans))
	}
	if len(repo.rows) != 1 {
		t.Fatalf("analysis should be persisted for an authenticated user, got %d rows", len(repo.rows))
	}

	rec2 := repo.rows[0]
	if rec2.SoilType != "loam" || rec2.SustainabilityScore != 85 {
		t.Fatalf("unexpected persisted record: %+v", rec2)
	}
	var stored ports.RecommendationPlan
	if err := json.Unmarshal(rec2.Recommendations, &stored); err != nil {
		t.Fatalf("persisted plan is not valid JSON: %v", err)
	}
	if stored.Recommendations[0].Crop != "Maize" {
		t.Fatalf("persisted plan mismatch: %+v", stored)
	}
}

func TestAgroplanService_Analyze_CacheHitSkipsGateway(t *testing.T) {
	rec := &stubRecommender{plan: gatewayPlan()}
	cache := newStubPlanCache()
	svc := NewAgroplanService(rec, cache, &stubAgroplanRepo{}, noplog())

	input := ports.AnalyzeInput{SoilType: "loam", Location: "Nakuru"}
	if _, err := svc.Analyze(context.Background(), input); err != nil {
		t.Fatalf("first Analyze failed: %v", err)
	}
	if _, err := svc.Analyze(context.Background(), input); err != nil {
		t.Fatalf("second Analyze failed: %v", err)
	}
	if rec.calls != 1 {
		t.Fatalf("second call should be served from cache, gateway called %d times", rec.calls)
	}

	// Different input misses the cache.
	if _, err := svc.Analyze(context.Background(), ports.AnalyzeInput{SoilType: "clay", Location: "Nakuru"}); err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if rec.calls != 2 {
		t.Fatalf("different input should reach the gateway, got %d calls", rec.calls)
	}
}

func TestAgroplanService_Analyze_FallbackOnGatewayError(t *testing.T) {
	rec := &stubRecommender{err: errors.New("gateway unreachable")}
	svc := NewAgroplanService(rec, newStubPlanCache(), &stubAgroplanRepo{}, noplog())

	plan, err := svc.Analyze(context.Background(), ports.AnalyzeInput{SoilType: "clay", Location: "Kisumu"})
	if err != nil {
		t.Fatalf("gateway failure must not surface: %v", err)
	}
	if len(plan.Recommendations) == 0 || plan.Recommendations[0].Crop != "Rice" {
		t.Fatalf("expected the clay demo plan, got %+v", plan)
	}
	if plan.SustainabilityScore != 70 {
		t.Fatalf("expected demo sustainability score 70, got %d", plan.SustainabilityScore)
	}

	sandy, _ := svc.Analyze(context.Background(), ports.AnalyzeInput{SoilType: "Sandy", Location: "Kisumu"})
	if sandy.Recommendations[0].Crop != "Groundnuts" {
		t.Fatalf("expected the sandy demo plan, got %+v", sandy)
	}
}

func TestAgroplanService_Analyze_ResilientToCacheAndRepoFailures(t *testing.T) {
	rec := &stubRecommender{plan: gatewayPlan()}
	cache := newStubPlanCache()
	cache.getErr = errors.New("redis down")
	cache.setErr = errors.New("redis down")
	repo := &stubAgroplanRepo{saveErr: errors.New("db down")}
	svc := NewAgroplanService(rec, cache, repo, noplog())

	plan, err := svc.Analyze(context.Background(), ports.AnalyzeInput{
		UserID: "u1", SoilType: "loam", Location: "Nakuru",
	})
	if err != nil {
		t.Fatalf("cache and repo failures must not surface: %v", err)
	}
	if plan.Recommendations[0].Crop != "Maize" {
		t.Fatalf("expected the gateway plan, got %+v", plan)
	}
}

func TestAgroplanService_Analyze_AnonymousNotPersisted(t *testing.T) {
	repo := &stubAgroplanRepo{}
	svc := NewAgroplanService(&stubRecommender{plan: gatewayPlan()}, newStubPlanCache(), repo, noplog())

	if _, err := svc.Analyze(context.Background(), ports.AnalyzeInput{SoilType: "loam", Location: "Nakuru"}); err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if len(repo.rows) != 0 {
		t.Fatalf("anonymous analyses must not be persisted, got %d rows", len(repo.rows))
	}
}
