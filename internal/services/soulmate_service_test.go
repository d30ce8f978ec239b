package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/tbourn/sidus-backend/internal/astro"
	"github.com/tbourn/sidus-backend/internal/llm"
	"github.com/tbourn/sidus-backend/internal/repo"
	"github.com/tbourn/sidus-backend/internal/storage"
)

var testNow = time.Date(2026, time.October, 14, 12, 0, 0, 0, time.UTC)

func newSoulmateSvc(t *testing.T) (*SoulmateService, *fakeImages, *fakeAnalyst, *fakeUploader) {
	t.Helper()
	img := &fakeImages{url: "https://oaidalleapiprodscus.blob.core.windows.net/tmp.png"}
	an := &fakeAnalyst{text: "A fiery, devoted match."}
	up := &fakeUploader{}
	s := &SoulmateService{
		DB:       newSvcDB(t),
		Images:   img,
		Analyst:  an,
		Uploader: up,
		Now:      func() time.Time { return testNow },
	}
	return s, img, an, up
}

func TestSoulmateService_Generate_LeoExample(t *testing.T) {
	s, img, an, up := newSoulmateSvc(t)
	// sun -> Sagittarius (8/12), moon -> Aries, rising -> Leo, score -> 95
	s.Rand = seq(8.5/12, 0, 4.2/12, 0.5)

	res, err := s.Generate(context.Background(), "u1", GenerateInput{
		UserSign:    "Leo",
		Gender:      "female",
		Ethnicities: []string{"asian"},
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if res.SoulmateSign != astro.Sagittarius || res.SunSign != astro.Sagittarius {
		t.Fatalf("soulmate sign: %+v", res)
	}
	if res.MoonSign != astro.Aries || res.RisingSign != astro.Leo {
		t.Fatalf("moon/rising: %+v", res)
	}
	if res.CompatibilityScore != 95 {
		t.Fatalf("score: got %d", res.CompatibilityScore)
	}
	if !strings.Contains(img.prompt, "female person of asian ethnicity") ||
		!strings.Contains(img.prompt, "compatible with a Leo") {
		t.Fatalf("prompt: %q", img.prompt)
	}
	if up.src != img.url || !strings.HasPrefix(up.fileName, "soulmate-") || !strings.HasSuffix(up.fileName, ".png") {
		t.Fatalf("upload args: %q %q", up.src, up.fileName)
	}
	if !strings.HasPrefix(res.ImageURL, "https://storage.googleapis.com/") {
		t.Fatalf("image url should be re-hosted: %q", res.ImageURL)
	}
	if an.args[0] != "Leo" || an.args[1] != "Sagittarius" || an.args[2] != "female" {
		t.Fatalf("analysis args: %v", an.args)
	}
	want := "Your passion meets their fiery Sagittarius spirit, igniting thrilling adventures, while your shared Leo rising fosters an intense emotional bond, creating an unbreakable connection."
	if res.ShortDescription != want {
		t.Fatalf("short description: %q", res.ShortDescription)
	}

	got, err := repo.LatestSoulmate(context.Background(), s.DB, "u1")
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if got.ID != res.ID || got.PersonalInfo.Data().Name != "Your Soulmate" {
		t.Fatalf("persisted row mismatch: %+v", got)
	}
}

func TestSoulmateService_Generate_ScoreBounds(t *testing.T) {
	for _, r := range []float64{0, 0.0999, 0.5, 0.9999, 1} {
		s, _, _, _ := newSoulmateSvc(t)
		s.Rand = seq(0, 0, 0, r)
		s.Cooldown = time.Nanosecond
		res, err := s.Generate(context.Background(), "u", GenerateInput{UserSign: "Aries", Gender: "male", Ethnicities: []string{}})
		if err != nil {
			t.Fatalf("r=%v: %v", r, err)
		}
		if res.CompatibilityScore < 90 || res.CompatibilityScore > 100 {
			t.Fatalf("r=%v: score %d out of band", r, res.CompatibilityScore)
		}
	}
}

func TestSoulmateService_DrawSign_Buckets(t *testing.T) {
	s := &SoulmateService{}
	for i, want := range astro.Signs {
		s.Rand = seq((float64(i) + 0.5) / 12)
		if got := s.drawSign(); got != want {
			t.Fatalf("bucket %d: got %s want %s", i, got, want)
		}
	}
	s.Rand = seq(1)
	if got := s.drawSign(); got != astro.Pisces {
		t.Fatalf("r=1 should clamp to Pisces, got %s", got)
	}
}

func TestSoulmateService_Generate_SignFrequencies(t *testing.T) {
	s, _, _, _ := newSoulmateSvc(t)
	s.Rand = rand.New(rand.NewPCG(7, 11)).Float64

	const runs = 1200
	expected := runs / len(astro.Signs)
	slots := map[string]map[astro.Sign]int{"sun": {}, "moon": {}, "rising": {}}
	for i := 0; i < runs; i++ {
		res, err := s.Generate(context.Background(), fmt.Sprintf("u%d", i), GenerateInput{
			UserSign: "Leo", Gender: "female", Ethnicities: []string{},
		})
		if err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
		if res.SoulmateSign != res.SunSign {
			t.Fatalf("run %d: soulmate sign %s != sun %s", i, res.SoulmateSign, res.SunSign)
		}
		slots["sun"][res.SunSign]++
		slots["moon"][res.MoonSign]++
		slots["rising"][res.RisingSign]++
	}
	for slot, counts := range slots {
		for _, sign := range astro.Signs {
			if n := counts[sign]; n < expected/2 || n > expected*3/2 {
				t.Errorf("%s slot: %s drawn %d times, want about %d", slot, sign, n, expected)
			}
		}
	}
}

func TestSoulmateService_Generate_EthnicityPreference(t *testing.T) {
	ctx := context.Background()

	s, img, _, _ := newSoulmateSvc(t)
	if _, err := s.Generate(ctx, "u1", GenerateInput{UserSign: "Leo", Gender: "female"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("missing preference: expected ErrInvalidInput, got %v", err)
	}
	if img.calls != 0 {
		t.Fatalf("image generator called without an ethnicity preference")
	}
	if _, err := repo.LatestSoulmate(ctx, s.DB, "u1"); !errors.Is(err, repo.ErrNotFound) {
		t.Fatalf("nothing should be persisted, got %v", err)
	}

	res, err := s.Generate(ctx, "u1", GenerateInput{UserSign: "Leo", Gender: "female", Ethnicities: []string{}})
	if err != nil {
		t.Fatalf("empty preference: %v", err)
	}
	if !strings.Contains(img.prompt, "person of diverse ethnicity") {
		t.Fatalf("empty preference should render as diverse: %q", img.prompt)
	}
	got, err := repo.LatestSoulmate(ctx, s.DB, "u1")
	if err != nil || got.ID != res.ID {
		t.Fatalf("latest: %+v err=%v", got, err)
	}
	if eth := got.PersonalInfo.Data().Ethnicity; len(eth) != 0 {
		t.Fatalf("stored ethnicity should be empty, got %v", eth)
	}
}

func TestSoulmateService_Generate_Cooldown(t *testing.T) {
	s, img, an, up := newSoulmateSvc(t)
	in := GenerateInput{UserSign: "Leo", Gender: "female", Ethnicities: []string{"latina"}}
	if _, err := s.Generate(context.Background(), "u1", in); err != nil {
		t.Fatalf("first: %v", err)
	}

	s.Now = func() time.Time { return testNow.Add(10 * time.Second) }
	_, err := s.Generate(context.Background(), "u1", in)
	if !errors.Is(err, ErrCooldown) {
		t.Fatalf("expected ErrCooldown, got %v", err)
	}
	if img.calls != 1 || an.calls != 1 || up.calls != 1 {
		t.Fatalf("generators must not run inside cooldown: img=%d an=%d up=%d", img.calls, an.calls, up.calls)
	}

	// another user is unaffected
	if _, err := s.Generate(context.Background(), "u2", in); err != nil {
		t.Fatalf("other user: %v", err)
	}

	s.Now = func() time.Time { return testNow.Add(DefaultCooldown + time.Second) }
	if _, err := s.Generate(context.Background(), "u1", in); err != nil {
		t.Fatalf("after cooldown: %v", err)
	}
}

func TestSoulmateService_Generate_InvalidInput(t *testing.T) {
	s, img, _, _ := newSoulmateSvc(t)
	cases := []GenerateInput{
		{UserSign: "Ophiuchus", Gender: "female", Ethnicities: []string{}},
		{UserSign: "Leo", Gender: "  ", Ethnicities: []string{}},
		{UserSign: "Leo", Gender: strings.Repeat("x", 40), Ethnicities: []string{}},
		{UserSign: "Leo", Gender: "female"}, // ethnicity preference missing
		{UserSign: "Leo", Gender: "male", Ethnicities: strings.Split("a,b,c,d,e,f,g,h,i", ",")},
	}
	for _, in := range cases {
		if _, err := s.Generate(context.Background(), "u1", in); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("%+v: expected ErrInvalidInput, got %v", in, err)
		}
	}
	if img.calls != 0 {
		t.Fatalf("image generator called for invalid input")
	}
}

func TestSoulmateService_Generate_StepFailures(t *testing.T) {
	boom := errors.New("boom")
	tests := []struct {
		name  string
		setup func(*fakeImages, *fakeAnalyst, *fakeUploader)
		want  error
	}{
		{"image error", func(i *fakeImages, _ *fakeAnalyst, _ *fakeUploader) { i.err = boom }, ErrImageGeneration},
		{"empty image url", func(i *fakeImages, _ *fakeAnalyst, _ *fakeUploader) { i.url = "" }, ErrImageGeneration},
		{"upload error", func(_ *fakeImages, _ *fakeAnalyst, u *fakeUploader) { u.err = storage.ErrDownload }, ErrImageUpload},
		{"analysis error", func(_ *fakeImages, a *fakeAnalyst, _ *fakeUploader) { a.err = boom }, ErrAnalysis},
		{"empty analysis", func(_ *fakeImages, a *fakeAnalyst, _ *fakeUploader) { a.text = " " }, ErrAnalysis},
		{"llm not configured", func(i *fakeImages, _ *fakeAnalyst, _ *fakeUploader) { i.err = llm.ErrNotConfigured }, ErrMisconfigured},
		{"llm unauthorized", func(_ *fakeImages, a *fakeAnalyst, _ *fakeUploader) { a.err = llm.ErrUnauthorized }, ErrMisconfigured},
		{"bucket not configured", func(_ *fakeImages, _ *fakeAnalyst, u *fakeUploader) { u.err = storage.ErrNotConfigured }, ErrMisconfigured},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, img, an, up := newSoulmateSvc(t)
			tc.setup(img, an, up)
			_, err := s.Generate(context.Background(), "u1", GenerateInput{UserSign: "Leo", Gender: "female", Ethnicities: []string{}})
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if tc.want != ErrMisconfigured && !errors.Is(err, ErrGenerationFailed) {
				t.Fatalf("step errors should wrap ErrGenerationFailed: %v", err)
			}
			if _, err := repo.LatestSoulmate(context.Background(), s.DB, "u1"); !errors.Is(err, repo.ErrNotFound) {
				t.Fatalf("nothing should be persisted on failure, got %v", err)
			}
		})
	}
}

func TestSoulmateService_LatestAndDelete(t *testing.T) {
	s, _, _, _ := newSoulmateSvc(t)
	ctx := context.Background()

	sm, err := s.Latest(ctx, "u1")
	if err != nil || sm != nil {
		t.Fatalf("expected nil soulmate, got %+v err=%v", sm, err)
	}
	if _, err := s.DeleteLatest(ctx, "u1"); !errors.Is(err, ErrSoulmateNotFound) {
		t.Fatalf("expected ErrSoulmateNotFound, got %v", err)
	}

	res, err := s.Generate(ctx, "u1", GenerateInput{UserSign: "Virgo", Gender: "male", Ethnicities: []string{"white"}})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	sm, err = s.Latest(ctx, "u1")
	if err != nil || sm == nil || sm.ID != res.ID {
		t.Fatalf("latest: %+v err=%v", sm, err)
	}
	if got, err := s.Get(ctx, "u1", res.ID); err != nil || got.ID != res.ID {
		t.Fatalf("get: %+v err=%v", got, err)
	}
	if _, err := s.Get(ctx, "u2", res.ID); !errors.Is(err, ErrSoulmateNotFound) {
		t.Fatalf("other user's soulmate must not be visible: %v", err)
	}

	del, err := s.DeleteLatest(ctx, "u1")
	if err != nil || del.ID != res.ID {
		t.Fatalf("delete: %+v err=%v", del, err)
	}
	if sm, _ := s.Latest(ctx, "u1"); sm != nil {
		t.Fatalf("expected no soulmate after delete")
	}
}

func TestSoulmateService_Save(t *testing.T) {
	s, _, _, _ := newSoulmateSvc(t)
	ctx := context.Background()

	in := SaveInput{
		Gender:             "female",
		Ethnicities:        []string{" latina ", ""},
		SunSign:            "aries",
		MoonSign:           "Libra",
		RisingSign:         "Leo",
		CompatibilityScore: 92,
		Analysis:           "text",
		ImageURL:           "https://example.com/x.png",
	}
	sm, err := s.Save(ctx, "u1", in)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if a := sm.AstrologicalInfo.Data(); a.SunSign != "Aries" || a.SoulmateSign != "Aries" {
		t.Fatalf("signs not canonicalized: %+v", a)
	}
	if e := sm.PersonalInfo.Data().Ethnicity; len(e) != 1 || e[0] != "latina" {
		t.Fatalf("ethnicity tags: %v", e)
	}

	bad := in
	bad.MoonSign = "Ophiuchus"
	if _, err := s.Save(ctx, "u1", bad); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	bad = in
	bad.CompatibilityScore = 101
	if _, err := s.Save(ctx, "u1", bad); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for score, got %v", err)
	}
}
