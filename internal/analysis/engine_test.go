package analysis

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/jonathan/career-navigator/internal/fallback"
	"github.com/jonathan/career-navigator/internal/llm"
	"github.com/jonathan/career-navigator/internal/observability"
	"github.com/jonathan/career-navigator/internal/salary"
	"github.com/jonathan/career-navigator/internal/types"
	"github.com/jonathan/career-navigator/internal/usage"
)

var fixedNow = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

// fakeClient is a scripted generative adapter
type fakeClient struct {
	content string
	usage   *llm.Usage
	err     error
	block   bool
	cached  bool

	mu     sync.Mutex
	calls  int
	system string
	user   string
	opts   llm.CompletionOptions
}

func (f *fakeClient) Complete(ctx context.Context, system, user string, opts llm.CompletionOptions) (*llm.Completion, error) {
	f.mu.Lock()
	f.calls++
	f.system, f.user, f.opts = system, user, opts
	f.mu.Unlock()

	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if f.err != nil {
		return nil, f.err
	}
	return &llm.Completion{
		Content:  f.content,
		Usage:    f.usage,
		Provider: llm.ProviderGemini,
		Model:    "gemini-2.5-flash",
		Cached:   f.cached,
	}, nil
}

func (f *fakeClient) GetModel(llm.ModelTier) string { return "gemini-2.5-flash" }

func (f *fakeClient) Close() error { return nil }

func softwareEngineer() *types.CareerProfile {
	return &types.CareerProfile{
		Skills: []string{"JavaScript", "SQL"},
		Experience: []types.Experience{
			{Position: "Software Engineer", Company: "Acme", StartDate: "2019-01-01", Current: true},
		},
	}
}

func newTestEngine(client llm.Client, opts ...Option) *Engine {
	return NewEngine(append([]Option{WithClient(client), WithClock(fixedClock)}, opts...)...)
}

// assertComplete checks the structural guarantees every analysis must meet
func assertComplete(t *testing.T, a *types.CareerAnalysis) {
	t.Helper()
	require.NotNil(t, a)
	require.NoError(t, a.Validate())
	require.NotEmpty(t, a.CareerPaths)
	for _, p := range a.CareerPaths {
		require.NotEmpty(t, p.Timeline)
		assert.Len(t, p.SalaryProgression, len(p.Timeline))
		for _, m := range p.Timeline {
			assert.LessOrEqual(t, m.SalaryRange.Min, m.SalaryRange.Max)
			assert.GreaterOrEqual(t, m.SalaryRange.Min, 0.0)
		}
	}
	assert.GreaterOrEqual(t, a.CareerScore, 0)
	assert.LessOrEqual(t, a.CareerScore, 100)
	for _, action := range a.WeeklyActions {
		assert.False(t, action.Completed)
	}
}

func TestAnalyze_EmptyDocumentEndToEnd(t *testing.T) {
	client := &fakeClient{content: "{}"}
	e := newTestEngine(client)

	a, err := e.Analyze(context.Background(), softwareEngineer(), Options{})
	require.NoError(t, err)
	assertComplete(t, a)

	assert.Equal(t, 1, client.calls)
	assert.Equal(t, types.LevelSenior, a.CurrentPosition.Level)
	assert.Equal(t, 6.0, a.CurrentPosition.YearsExperience)
	assert.Equal(t, "Software Engineer", a.CurrentPosition.Title)
	assert.Equal(t, "high", a.CurrentPosition.MarketDemand)
	assert.Equal(t, salary.Default().Lookup("Software Engineer", types.LevelSenior), a.CurrentPosition.SalaryRange)

	assert.Equal(t, types.TrackTechnical, a.CareerPaths[0].Track)
	assert.GreaterOrEqual(t, len(a.SkillGaps), 1)
	assert.LessOrEqual(t, len(a.SkillGaps), 3)
	assert.Len(t, a.WeeklyActions, 3)
	assert.Equal(t, 22, a.CareerScore)
	assert.Equal(t, []string{"Professional experience", "Adaptability", "Commitment to growth"}, a.Strengths)
}

func TestAnalyze_NilClientIsAllFallback(t *testing.T) {
	e := NewEngine(WithClock(fixedClock))

	a, err := e.Analyze(context.Background(), softwareEngineer(), Options{})
	require.NoError(t, err)
	assertComplete(t, a)

	withEmpty, err := newTestEngine(&fakeClient{content: "{}"}).Analyze(context.Background(), softwareEngineer(), Options{})
	require.NoError(t, err)
	assert.Equal(t, withEmpty, a)
}

func TestAnalyze_BlockedCompletionFallsBack(t *testing.T) {
	client := &fakeClient{content: ""}
	a, err := newTestEngine(client).Analyze(context.Background(), softwareEngineer(), Options{})
	require.NoError(t, err)
	assertComplete(t, a)
	assert.Equal(t, 1, client.calls)

	fallbackOnly, err := NewEngine(WithClock(fixedClock)).Analyze(context.Background(), softwareEngineer(), Options{})
	require.NoError(t, err)
	assert.Equal(t, fallbackOnly, a)
}

func TestAnalyzeCareer(t *testing.T) {
	a, err := AnalyzeCareer(context.Background(), &fakeClient{content: "not json"}, softwareEngineer(), Options{Locale: "en"})
	require.NoError(t, err)
	assertComplete(t, a)
}

func TestAnalyze_MergesGenerativeDocument(t *testing.T) {
	content := `{
	  "careerPaths": [
	    {"id": "ai-track", "name": "ML Engineer", "track": "technical", "probability": 150,
	     "timeline": [
	       {"title": "ML Engineer", "yearsFromNow": 1, "salaryRange": {"min": 999999, "max": 1}, "keySkills": ["PyTorch"]},
	       {"yearsFromNow": -3},
	       {"title": "Head of AI", "yearsFromNow": "6"}
	     ],
	     "salaryProgression": [1, 2, 3]},
	    {"name": "Consulting", "track": "bogus", "probability": "45", "timeline": []},
	    "garbage"
	  ],
	  "skillGaps": [
	    {"skill": "MLOps", "priority": "critical", "resources": ["Course A", {"name": "Book B", "type": "book"}, {"type": "x"}]},
	    {"priority": "high"}
	  ],
	  "strengths": ["Problem solving", "", 3],
	  "weeklyActions": [
	    {"id": "a", "title": "Read paper", "category": "learning", "priority": "critical", "estimatedHours": 3, "completed": true},
	    {"id": "a", "title": "Ship demo", "estimatedHours": -2},
	    {"title": ""},
	    {"title": "Network", "category": "NETWORK", "priority": "low"}
	  ],
	  "industryInsights": {"trends": ["AI boom"], "outlook": ""}
	}`
	e := newTestEngine(&fakeClient{content: "```json\n" + content + "\n```"})

	a, err := e.Analyze(context.Background(), softwareEngineer(), Options{})
	require.NoError(t, err)
	assertComplete(t, a)

	table := salary.Default()
	gen := fallback.New(types.LocaleEnglish, table)
	fbPaths := gen.Paths("Software Engineer", types.TrackTechnical)
	fbInsights := gen.Insights("Software Engineer", "", types.TrackTechnical)

	require.Len(t, a.CareerPaths, 2)
	first := a.CareerPaths[0]
	assert.Equal(t, "ai-track", first.ID)
	assert.Equal(t, "ML Engineer", first.Name)
	assert.Equal(t, fbPaths[0].Description, first.Description)
	assert.Equal(t, 100, first.Probability)
	assert.Equal(t, fbPaths[0].Requirements, first.Requirements)

	require.Len(t, first.Timeline, 3)
	assert.Equal(t, "ML Engineer", first.Timeline[0].Title)
	assert.Equal(t, []string{"PyTorch"}, first.Timeline[0].KeySkills)
	assert.Equal(t, fbPaths[0].Timeline[0].Description, first.Timeline[0].Description)
	assert.Equal(t, table.Lookup("ML Engineer", types.LevelMid), first.Timeline[0].SalaryRange)

	assert.Equal(t, fbPaths[0].Timeline[1].Title, first.Timeline[1].Title)
	assert.Equal(t, fbPaths[0].Timeline[1].YearsFromNow, first.Timeline[1].YearsFromNow)
	assert.Equal(t, fbPaths[0].Timeline[1].KeySkills, first.Timeline[1].KeySkills)

	assert.Equal(t, "Head of AI", first.Timeline[2].Title)
	assert.Equal(t, 6, first.Timeline[2].YearsFromNow)
	assert.Equal(t, table.Lookup("Head of AI", types.LevelLead), first.Timeline[2].SalaryRange)
	assert.Equal(t, []float64{
		salary.Midpoint(first.Timeline[0].SalaryRange),
		salary.Midpoint(first.Timeline[1].SalaryRange),
		salary.Midpoint(first.Timeline[2].SalaryRange),
	}, first.SalaryProgression)

	second := a.CareerPaths[1]
	assert.Equal(t, fbPaths[1].ID, second.ID)
	assert.Equal(t, "Consulting", second.Name)
	assert.Equal(t, fbPaths[1].Track, second.Track)
	assert.Equal(t, 45, second.Probability)
	assert.Equal(t, fbPaths[1].Timeline, second.Timeline)

	require.Len(t, a.SkillGaps, 1)
	gap := a.SkillGaps[0]
	assert.Equal(t, "MLOps", gap.Skill)
	assert.Equal(t, types.PriorityCritical, gap.Priority)
	assert.Equal(t, types.SkillLevelBeginner, gap.CurrentLevel)
	assert.Equal(t, types.SkillLevelAdvanced, gap.RequiredLevel)
	assert.Equal(t, []types.LearningResource{{Name: "Course A", Type: "resource"}, {Name: "Book B", Type: "book"}}, gap.Resources)
	assert.Equal(t, "1-3 months", gap.EstimatedTimeToAcquire)

	assert.Equal(t, []string{"Problem solving"}, a.Strengths)

	require.Len(t, a.WeeklyActions, 3)
	assert.Equal(t, types.WeeklyAction{
		ID: "a", Title: "Read paper", Category: types.CategoryLearning,
		Priority: types.PriorityHigh, EstimatedHours: 3,
	}, a.WeeklyActions[0])
	assert.Equal(t, "action-2", a.WeeklyActions[1].ID)
	assert.Equal(t, types.CategorySkill, a.WeeklyActions[1].Category)
	assert.Equal(t, types.PriorityMedium, a.WeeklyActions[1].Priority)
	assert.Equal(t, 1.0, a.WeeklyActions[1].EstimatedHours)
	assert.Equal(t, "action-3", a.WeeklyActions[2].ID)
	assert.Equal(t, types.CategoryNetwork, a.WeeklyActions[2].Category)
	assert.Equal(t, types.PriorityLow, a.WeeklyActions[2].Priority)

	assert.Equal(t, []string{"AI boom"}, a.IndustryInsights.Trends)
	assert.Equal(t, fbInsights.InDemandSkills, a.IndustryInsights.InDemandSkills)
	assert.Equal(t, fbInsights.Outlook, a.IndustryInsights.Outlook)

	// One critical gap costs five points: 18 (experience) + 4 (skills) - 5
	assert.Equal(t, 17, a.CareerScore)
}

func TestAnalyze_BoundsGenerativeArrays(t *testing.T) {
	content := `{"careerPaths": [` +
		`{"timeline": [{},{},{},{},{},{},{},{},{}]},{},{},{},{},{}` +
		`], "strengths": ["a","b","c","d","e","f","g","h","i","j"],` +
		`"weeklyActions": [{"title":"1"},{"title":"2"},{"title":"3"},{"title":"4"},{"title":"5"},{"title":"6"},{"title":"7"},{"title":"8"}]}`
	e := newTestEngine(&fakeClient{content: content})

	a, err := e.Analyze(context.Background(), softwareEngineer(), Options{})
	require.NoError(t, err)
	assertComplete(t, a)

	assert.Len(t, a.CareerPaths, maxPaths)
	assert.Len(t, a.CareerPaths[0].Timeline, maxMilestones)
	assert.Equal(t, 1, a.CareerPaths[0].Timeline[5].YearsFromNow)
	assert.Len(t, a.Strengths, maxStrengths)
	assert.Len(t, a.WeeklyActions, maxActions)

	ids := make(map[string]bool)
	for _, p := range a.CareerPaths {
		assert.False(t, ids[p.ID], "duplicate path id %s", p.ID)
		ids[p.ID] = true
	}
}

func TestAnalyze_SalaryAlwaysRecomputed(t *testing.T) {
	content := `{"careerPaths": [{"id": "p", "name": "P", "track": "technical", "probability": 50,
	  "timeline": [{"title": "Software Engineer", "yearsFromNow": 0, "salaryRange": {"min": 1, "max": 2, "currency": "USD"}}],
	  "salaryProgression": [99]}]}`
	e := newTestEngine(&fakeClient{content: content})

	a, err := e.Analyze(context.Background(), softwareEngineer(), Options{})
	require.NoError(t, err)

	m := a.CareerPaths[0].Timeline[0]
	assert.Equal(t, salary.Default().Lookup("Software Engineer", types.LevelMid), m.SalaryRange)
	assert.Equal(t, types.CurrencySAR, m.SalaryRange.Currency)
	assert.Equal(t, []float64{salary.Midpoint(m.SalaryRange)}, a.CareerPaths[0].SalaryProgression)
	assert.Equal(t, 0, m.YearsFromNow)
}

func TestAnalyze_Idempotent(t *testing.T) {
	content := `{"careerPaths": [{"name": "X", "timeline": [{"title": "Y"}]}], "strengths": ["Go"]}`
	e := newTestEngine(&fakeClient{content: content})

	first, err := e.Analyze(context.Background(), softwareEngineer(), Options{TargetIndustry: "Fintech"})
	require.NoError(t, err)
	second, err := e.Analyze(context.Background(), softwareEngineer(), Options{TargetIndustry: "Fintech"})
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestAnalyze_TransportErrorPropagates(t *testing.T) {
	boom := errors.New("permission denied")
	e := newTestEngine(&fakeClient{err: boom})

	a, err := e.Analyze(context.Background(), softwareEngineer(), Options{})
	assert.Nil(t, a)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAdapter)
	assert.ErrorIs(t, err, boom)
}

func TestAnalyze_CancellationDegradesToFallback(t *testing.T) {
	t.Run("engine timeout", func(t *testing.T) {
		e := newTestEngine(&fakeClient{block: true}, WithTimeout(20*time.Millisecond))

		a, err := e.Analyze(context.Background(), softwareEngineer(), Options{})
		require.NoError(t, err)
		assertComplete(t, a)
	})

	t.Run("caller deadline", func(t *testing.T) {
		e := newTestEngine(&fakeClient{block: true}, WithTimeout(0))
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		a, err := e.Analyze(ctx, softwareEngineer(), Options{})
		require.NoError(t, err)
		assertComplete(t, a)
	})

	t.Run("caller cancel", func(t *testing.T) {
		e := newTestEngine(&fakeClient{block: true})
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		a, err := e.Analyze(ctx, softwareEngineer(), Options{})
		require.NoError(t, err)
		assertComplete(t, a)
	})

	t.Run("error wrapping context error", func(t *testing.T) {
		e := newTestEngine(&fakeClient{err: context.DeadlineExceeded})

		a, err := e.Analyze(context.Background(), softwareEngineer(), Options{})
		require.NoError(t, err)
		assertComplete(t, a)
	})
}

func TestAnalyze_PathologicalProfiles(t *testing.T) {
	many := make([]string, 50)
	for i := range many {
		many[i] = "skill"
	}
	criticalDoc := `{"skillGaps": [` +
		`{"skill":"a","priority":"critical"},{"skill":"b","priority":"critical"},{"skill":"c","priority":"critical"},` +
		`{"skill":"d","priority":"critical"},{"skill":"e","priority":"critical"}]}`

	profiles := map[string]*types.CareerProfile{
		"nil":   nil,
		"empty": {},
		"bad dates": {Experience: []types.Experience{
			{Position: "Analyst", StartDate: "sometime", EndDate: "later"},
			{StartDate: "2020-13-45"},
		}},
		"fifty skills": {Skills: many},
		"arabic role":  {Experience: []types.Experience{{Position: "مهندس برمجيات", StartDate: "2010-01", Current: true}}},
		"long career":  {Experience: []types.Experience{{Position: "Chief Executive", StartDate: "1990"}}},
	}
	docs := []string{"", "{}", "[]", "null", `{"careerPaths": "nope", "skillGaps": {}, "weeklyActions": [1,2]}`, criticalDoc}

	for name, p := range profiles {
		for _, doc := range docs {
			for _, locale := range []string{"en", "ar"} {
				e := newTestEngine(&fakeClient{content: doc})
				a, err := e.Analyze(context.Background(), p, Options{Locale: locale})
				require.NoError(t, err, "%s / %q / %s", name, doc, locale)
				assertComplete(t, a)
			}
		}
	}
}

func TestAnalyze_EmptyProfileUsesGenericRole(t *testing.T) {
	a, err := newTestEngine(nil).Analyze(context.Background(), &types.CareerProfile{}, Options{})
	require.NoError(t, err)
	assert.Equal(t, "Professional", a.CurrentPosition.Title)
	assert.Equal(t, types.LevelEntry, a.CurrentPosition.Level)
	assert.Equal(t, types.TrackSpecialist, a.CareerPaths[0].Track)

	ar, err := newTestEngine(nil).Analyze(context.Background(), &types.CareerProfile{}, Options{Locale: "ar-SA"})
	require.NoError(t, err)
	assert.Equal(t, "مختص", ar.CurrentPosition.Title)
	assert.Equal(t, []string{"الخبرة المهنية", "القدرة على التكيف", "الالتزام بالتطور"}, ar.Strengths)
}

func TestAnalyze_TargetRoleDrivesTrack(t *testing.T) {
	p := softwareEngineer()
	p.TargetRole = "Engineering Manager"

	a, err := newTestEngine(nil).Analyze(context.Background(), p, Options{})
	require.NoError(t, err)
	assert.Equal(t, "Software Engineer", a.CurrentPosition.Title)
	assert.Equal(t, types.TrackManagement, a.CareerPaths[0].Track)
	assert.Equal(t, types.TrackSpecialist, a.CareerPaths[1].Track)
}

func TestAnalyze_PromptContents(t *testing.T) {
	client := &fakeClient{content: "{}"}
	p := softwareEngineer()
	p.Summary = "Backend engineer"
	p.Skills = append(p.Skills, "js", " sql ")
	p.Experience = append(p.Experience,
		types.Experience{Position: "Intern", Company: "Old Co", StartDate: "2015-06", EndDate: "2015-09"},
		types.Experience{Position: "Junior Developer", Company: "Mid Co", StartDate: "2016-01", EndDate: "2018-12", Bullets: []string{"Built APIs"}},
		types.Experience{Position: "Contractor", Company: "Gig", StartDate: "unknown"},
	)
	e := newTestEngine(client, WithModelTier(llm.TierAdvanced), WithGeneration(2048, 0.2))

	_, err := e.Analyze(context.Background(), p, Options{Locale: "ar", TargetIndustry: "Banking"})
	require.NoError(t, err)

	assert.Contains(t, client.system, "باللغة العربية")
	assert.Contains(t, client.user, "Focus role: Software Engineer")
	assert.Contains(t, client.user, "Inferred track: technical")
	assert.Contains(t, client.user, "9.2 (lead level)")
	assert.Contains(t, client.user, "Target industry: Banking")
	assert.Contains(t, client.user, "- Skills: JavaScript, SQL\n")
	assert.Contains(t, client.user, "• Built APIs")
	assert.NotContains(t, client.user, "Contractor")
	assert.NotContains(t, client.user, "{{.")
	assert.Less(t, strings.Index(client.user, "Software Engineer at Acme"), strings.Index(client.user, "Junior Developer at Mid Co"))
	assert.Less(t, strings.Index(client.user, "Junior Developer at Mid Co"), strings.Index(client.user, "Intern at Old Co"))

	assert.Equal(t, llm.CompletionOptions{MaxTokens: 2048, Temperature: 0.2, JSONMode: true, Tier: llm.TierAdvanced}, client.opts)
}

func TestAnalyze_EmitsUsage(t *testing.T) {
	var mu sync.Mutex
	var records []usage.Record
	recorder := usage.RecorderFunc(func(ctx context.Context, rec usage.Record) error {
		mu.Lock()
		defer mu.Unlock()
		records = append(records, rec)
		return nil
	})

	client := &fakeClient{content: "{}", usage: &llm.Usage{PromptTokens: 100, CompletionTokens: 50, TotalTokens: 150}}
	e := newTestEngine(client, WithRecorder(recorder))

	_, err := e.Analyze(context.Background(), softwareEngineer(), Options{UserID: "user-42"})
	require.NoError(t, err)
	e.Wait()

	require.Len(t, records, 1)
	rec := records[0]
	assert.Equal(t, "user-42", rec.UserID)
	assert.Equal(t, "gemini", rec.Provider)
	assert.Equal(t, "gemini-2.5-flash", rec.Model)
	assert.Equal(t, OperationCareerAnalysis, rec.Operation)
	assert.Equal(t, 150, rec.TotalTokens)
	assert.InDelta(t, 0.000155, rec.CostUSD, 1e-12)
	assert.InDelta(t, 0.000155*usage.SARPerUSD, rec.CostSAR, 1e-12)
	assert.Equal(t, 1, rec.Credits)
	assert.Equal(t, fixedNow, rec.CreatedAt)
}

func TestAnalyze_UsageSinkFailuresDoNotFailAnalysis(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	client := &fakeClient{content: "{}", usage: &llm.Usage{PromptTokens: 1, CompletionTokens: 1}}

	failing := usage.RecorderFunc(func(context.Context, usage.Record) error { return errors.New("db down") })
	panicking := usage.RecorderFunc(func(context.Context, usage.Record) error { panic("boom") })

	for _, recorder := range []usage.Recorder{failing, panicking} {
		e := newTestEngine(client, WithRecorder(recorder), WithLogger(zap.New(core)))
		a, err := e.Analyze(context.Background(), softwareEngineer(), Options{})
		require.NoError(t, err)
		assertComplete(t, a)
		e.Wait()
	}

	assert.Equal(t, 1, logs.FilterMessage("failed to record usage").Len())
	assert.Equal(t, 1, logs.FilterMessage("usage recorder panicked").Len())
}

func TestAnalyze_CachedCompletionNotBilled(t *testing.T) {
	called := false
	recorder := usage.RecorderFunc(func(context.Context, usage.Record) error {
		called = true
		return nil
	})
	e := newTestEngine(&fakeClient{content: "{}", cached: true, usage: &llm.Usage{PromptTokens: 10, CompletionTokens: 10}}, WithRecorder(recorder))

	_, err := e.Analyze(context.Background(), softwareEngineer(), Options{})
	require.NoError(t, err)
	e.Wait()
	assert.False(t, called)
}

func TestAnalyze_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := observability.NewMetrics(reg)

	_, err := newTestEngine(&fakeClient{content: "garbage"}, WithMetrics(m)).Analyze(context.Background(), softwareEngineer(), Options{})
	require.NoError(t, err)
	_, err = newTestEngine(&fakeClient{err: errors.New("boom")}, WithMetrics(m)).Analyze(context.Background(), softwareEngineer(), Options{})
	require.Error(t, err)

	assert.Equal(t, 1.0, counterValue(t, reg, "career_analyses_total", "ok"))
	assert.Equal(t, 1.0, counterValue(t, reg, "career_analyses_total", "error"))
	assert.Equal(t, 1.0, counterValue(t, reg, "career_analysis_adapter_calls_total", observability.AdapterUnparseable))
	assert.Equal(t, 1.0, counterValue(t, reg, "career_analysis_adapter_calls_total", observability.AdapterError))
	for _, field := range []string{"careerPaths", "skillGaps", "strengths", "weeklyActions", "industryInsights"} {
		assert.Equal(t, 1.0, counterValue(t, reg, "career_analysis_fallback_fields_total", field), field)
	}
}

func TestAnalyze_Concurrent(t *testing.T) {
	e := newTestEngine(&fakeClient{content: `{"strengths": ["Go"]}`})

	var wg sync.WaitGroup
	results := make([]*types.CareerAnalysis, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			a, err := e.Analyze(context.Background(), softwareEngineer(), Options{})
			assert.NoError(t, err)
			results[i] = a
		}(i)
	}
	wg.Wait()

	for _, a := range results[1:] {
		assert.Equal(t, results[0], a)
	}
}

func counterValue(t *testing.T, reg *prometheus.Registry, name, label string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, family := range families {
		if family.GetName() != name {
			continue
		}
		for _, metric := range family.GetMetric() {
			for _, pair := range metric.GetLabel() {
				if pair.GetValue() == label {
					return metric.GetCounter().GetValue()
				}
			}
		}
	}
	return 0
}
