// Shared test framework for the UI suites: per-suite result directories,
// test logging and access to the run configuration and credentials.

package common

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ternarybob/dwitest/internal/common"
	"github.com/ternarybob/dwitest/internal/models"
)

// suiteDirectories tracks parent directories for test suites so every test
// of one suite lands under the same timestamped directory.
var (
	suiteDirectories      = make(map[string]string)
	suiteDirectoriesMutex sync.Mutex
)

// TestEnvironment holds what one UI test needs: configuration, credentials
// and a results directory of its own.
type TestEnvironment struct {
	Config        *common.Config
	BrowserConfig *common.BrowserConfig
	Credentials   models.CredentialSet
	ResultsDir    string

	testLog *os.File
	logMu   sync.Mutex
}

// extractSuiteName derives the suite name from a test name, matching the
// test file naming convention: "TestAllParameterTypes" -> "all".
func extractSuiteName(testName string) string {
	remainder := strings.TrimPrefix(testName, "Test")

	var capitals []int
	for i := 0; i < len(remainder); i++ {
		if remainder[i] >= 'A' && remainder[i] <= 'Z' {
			capitals = append(capitals, i)
		}
	}
	if len(capitals) >= 2 {
		return strings.ToLower(remainder[:capitals[1]])
	}
	return strings.ToLower(remainder)
}

func getOrCreateSuiteDirectory(suiteName, baseDir string) (string, error) {
	suiteDirectoriesMutex.Lock()
	defer suiteDirectoriesMutex.Unlock()

	if existing, ok := suiteDirectories[suiteName]; ok {
		return existing, nil
	}

	timestamp := time.Now().Format("20060102-150405")
	suiteDir := filepath.Join(baseDir, fmt.Sprintf("%s-%s", suiteName, timestamp))
	if err := os.MkdirAll(suiteDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create suite directory: %w", err)
	}

	suiteDirectories[suiteName] = suiteDir
	return suiteDir, nil
}

// repoRoot walks up from the working directory until it finds the data
// directory, so tests run from test/ui find data/ and config at the root.
func repoRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return "."
	}
	for i := 0; i < 5; i++ {
		if _, err := os.Stat(filepath.Join(dir, "data")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "."
}

// SetupTestEnvironment loads configuration and credentials and creates the
// results directory for the named test.
func SetupTestEnvironment(testName string) (*TestEnvironment, error) {
	root := repoRoot()

	config, err := common.LoadConfig(configPath(root))
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	browserConfig, err := common.LoadBrowserConfig(filepath.Join(root, "data", "config.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to load browser configuration: %w", err)
	}

	credentials, err := common.LoadCredentials(filepath.Join(root, "data", "credentials.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to load credentials: %w", err)
	}

	suiteDir, err := getOrCreateSuiteDirectory(extractSuiteName(testName), config.Output.ResultsDir)
	if err != nil {
		return nil, err
	}

	resultsDir := filepath.Join(suiteDir, testName)
	if err := os.MkdirAll(resultsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create results directory: %w", err)
	}

	testLog, err := os.Create(filepath.Join(resultsDir, "test.log"))
	if err != nil {
		return nil, fmt.Errorf("failed to create test log: %w", err)
	}

	return &TestEnvironment{
		Config:        config,
		BrowserConfig: browserConfig,
		Credentials:   credentials,
		ResultsDir:    resultsDir,
		testLog:       testLog,
	}, nil
}

func configPath(root string) string {
	if custom := os.Getenv("DWITEST_CONFIG"); custom != "" {
		return custom
	}
	path := filepath.Join(root, "test", "config.toml")
	if _, err := os.Stat(path); err == nil {
		return path
	}
	return ""
}

// Cleanup closes the test log. Screenshots and artifacts stay on disk for
// inspection.
func (env *TestEnvironment) Cleanup() {
	env.logMu.Lock()
	defer env.logMu.Unlock()
	if env.testLog != nil {
		env.testLog.Close()
		env.testLog = nil
	}
}

// LogTest writes a line to both the Go test output and the per-test log
// file.
func (env *TestEnvironment) LogTest(t *testing.T, format string, args ...interface{}) {
	t.Helper()
	message := fmt.Sprintf(format, args...)
	t.Log(message)

	env.logMu.Lock()
	defer env.logMu.Unlock()
	if env.testLog != nil {
		fmt.Fprintf(env.testLog, "[%s] %s\n", time.Now().Format("15:04:05.000"), message)
	}
}

// BaseURL returns the target platform URL for this run.
func (env *TestEnvironment) BaseURL() string {
	return env.Config.Target.BaseURL
}

// CredentialsFor fails the test when the role has no stored credentials.
func (env *TestEnvironment) CredentialsFor(t *testing.T, role models.Role) models.Credentials {
	t.Helper()
	creds, err := common.MustCredentials(env.Credentials, role)
	if err != nil {
		t.Fatalf("Missing credentials: %v", err)
	}
	return creds
}

// CheckTargetReachable probes the target platform and reports whether UI
// tests can run at all.
func CheckTargetReachable(baseURL string) error {
	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Get(baseURL)
	if err != nil {
		return fmt.Errorf("target %s not reachable: %w", baseURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return fmt.Errorf("target %s returned status %d", baseURL, resp.StatusCode)
	}
	return nil
}
