package main

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/mindmend/internal/domain/advice"
	"github.com/yanqian/mindmend/internal/infra/config"
)

type fakeRequester struct {
	outcome advice.Outcome
	got     advice.Request
}

func (f *fakeRequester) RequestAdvice(ctx context.Context, req advice.Request) (string, bool) {
	o := f.Consult(ctx, req)
	return o.Advice, o.OK
}

func (f *fakeRequester) Consult(_ context.Context, req advice.Request) advice.Outcome {
	f.got = req
	return f.outcome
}

func (f *fakeRequester) Candidates() []string { return nil }

func runCLI(t *testing.T, args ...string) string {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("ENV_FILE", "")
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestAdviceCommandPrintsAttempts(t *testing.T) {
	fake := &fakeRequester{outcome: advice.Outcome{
		Advice: "Splash cold water on your face.",
		OK:     true,
		Attempts: []advice.Attempt{
			{Model: "a/one", Outcome: advice.OutcomeBadStatus, StatusCode: 429, Reason: "rate limited", LatencyMs: 12},
			{Model: "b/two", Outcome: advice.OutcomeSuccess, LatencyMs: 40},
		},
	}}
	prev := newRequester
	newRequester = func(context.Context, *config.Config, *slog.Logger) (advice.Requester, error) { return fake, nil }
	t.Cleanup(func() { newRequester = prev })

	out := runCLI(t, "advice", "--mood", "Anxious", "--notes", "exam tomorrow")
	require.Equal(t, advice.Request{Mood: "Anxious", Notes: "exam tomorrow"}, fake.got)
	require.Contains(t, out, "a/one")
	require.Contains(t, out, "429")
	require.Contains(t, out, "Splash cold water on your face.")
}

func TestPrintOutcome(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printOutcome(&buf, advice.Outcome{Skipped: advice.SkipNoCredential}, false))
	require.Equal(t, "skipped: no_credential\n", buf.String())

	buf.Reset()
	require.NoError(t, printOutcome(&buf, advice.Outcome{Attempts: []advice.Attempt{{Model: "x", Outcome: advice.OutcomeEmptyResponse}}}, false))
	require.Contains(t, buf.String(), "no advice available")

	buf.Reset()
	require.NoError(t, printOutcome(&buf, advice.Outcome{Advice: "ok", OK: true}, true))
	var decoded advice.Outcome
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.True(t, decoded.OK)
}

func TestCandidatesCommand(t *testing.T) {
	t.Setenv("ADVICE_CANDIDATES", "a/one,gemini:gemini-2.5-flash")
	out := runCLI(t, "candidates")
	require.Equal(t, "1\ta/one\n2\tgemini:gemini-2.5-flash\n", out)
}
