package cli

import (
	"testing"
)

func TestRootCmd_RegisteredCommands(t *testing.T) {
	expected := map[string]bool{
		"scan":    false,
		"tables":  false,
		"schema":  false,
		"exec":    false,
		"version": false,
	}

	for _, cmd := range rootCmd.Commands() {
		if _, ok := expected[cmd.Name()]; ok {
			expected[cmd.Name()] = true
		}
	}

	for name, found := range expected {
		if !found {
			t.Errorf("command %q not registered on root", name)
		}
	}
}

func TestConnectionFlags_RegisteredOnScan(t *testing.T) {
	for _, flag := range []string{
		"connection", "host", "port", "username", "database", "sslmode",
		"password", "azure", "azure-tenant-id", "azure-client-id",
		"aws-region", "google-instance",
	} {
		if scanCmd.Flags().Lookup(flag) == nil {
			t.Errorf("scan command missing connection flag %q", flag)
		}
	}
}

func TestScanFlags_Defaults(t *testing.T) {
	if f := scanCmd.Flags().Lookup("sample-limit"); f == nil || f.DefValue != "0" {
		t.Error("sample-limit should default to 0 (meaning: use the built-in default)")
	}
	if f := scanCmd.Flags().Lookup("timeout"); f == nil || f.DefValue != "3m0s" {
		t.Error("timeout should default to 3m")
	}
}

func TestTablesCmd_RejectsPositionalArgs(t *testing.T) {
	if err := tablesCmd.Args(tablesCmd, []string{"unexpected"}); err == nil {
		t.Fatal("expected error for positional args")
	}
}

func TestExecCmd_AcceptsAtMostOneArg(t *testing.T) {
	if err := execCmd.Args(execCmd, []string{"SELECT 1", "SELECT 2"}); err == nil {
		t.Fatal("expected error for two args")
	}
	if err := execCmd.Args(execCmd, nil); err != nil {
		t.Fatalf("no args should be allowed (stdin mode): %v", err)
	}
}
