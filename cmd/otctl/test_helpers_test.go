package main

import (
	"bytes"
	"strings"
	"testing"

	"otctl/internal/config"
	"otctl/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	robot      *testsupport.FakeRobot
	configPath string
}

func setupCLITestEnv(t *testing.T, opts ...testsupport.ConfigOption) *cliTestEnv {
	t.Helper()

	t.Setenv("OT_ROBOT_URL", "")
	t.Setenv("OT_RUN_ID", "")
	robot := testsupport.NewFakeRobot(t)
	robot.SetPipettes("p1000_single_flex", "")
	cfg := testsupport.NewConfig(t, append([]testsupport.ConfigOption{testsupport.WithRobotURL(robot.URL())}, opts...)...)
	return &cliTestEnv{
		cfg:        cfg,
		robot:      robot,
		configPath: testsupport.WriteConfig(t, cfg),
	}
}

func runCLI(t *testing.T, env *cliTestEnv, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", env.configPath}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q, got:\n%s", needle, haystack)
	}
}
