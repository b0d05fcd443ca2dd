// Package jobs tracks the jobs each test run creates on the platform, so
// cleanup tooling and later runs know which job codes belong to automation.
package jobs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/dwitest/internal/common"
	"github.com/ternarybob/dwitest/internal/models"
)

const registryFileName = "test_jobs.json"

// registryFile is the on-disk shape: a single object with a jobs array,
// so the file stays valid JSON even when empty.
type registryFile struct {
	Jobs []models.JobRecord `json:"jobs"`
}

// Registry is a file-backed record of created jobs. All methods are safe
// for concurrent use within one process; the file is rewritten whole on
// every mutation.
type Registry struct {
	path string
	log  arbor.ILogger

	mu sync.Mutex
}

// NewRegistry opens (or creates) the registry file under the given results
// directory.
func NewRegistry(resultsDir string) (*Registry, error) {
	if err := os.MkdirAll(resultsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create results directory: %w", err)
	}

	r := &Registry{
		path: filepath.Join(resultsDir, registryFileName),
		log:  common.GetLogger(),
	}

	if _, err := os.Stat(r.path); os.IsNotExist(err) {
		if err := r.write(registryFile{Jobs: []models.JobRecord{}}); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Path returns the registry file location.
func (r *Registry) Path() string {
	return r.path
}

// Register appends a job record, stamping it with the current time.
func (r *Registry) Register(jobCode, testName, additionalInfo string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.read()
	if err != nil {
		return err
	}

	file.Jobs = append(file.Jobs, models.JobRecord{
		JobCode:        jobCode,
		TestName:       testName,
		CreatedAt:      time.Now().UTC().Format(time.RFC3339),
		AdditionalInfo: additionalInfo,
	})

	if err := r.write(file); err != nil {
		return err
	}

	r.log.Info().Str("job_code", jobCode).Str("test", testName).Msg("Job registered")
	return nil
}

// List returns all recorded jobs in registration order.
func (r *Registry) List() ([]models.JobRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.read()
	if err != nil {
		return nil, err
	}
	return file.Jobs, nil
}

// Clear removes every record, leaving a valid empty registry behind.
func (r *Registry) Clear() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.write(registryFile{Jobs: []models.JobRecord{}})
}

// PruneOlderThan drops records created before the cutoff and returns how
// many were removed. Records with unparseable timestamps are kept.
func (r *Registry) PruneOlderThan(cutoff time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.read()
	if err != nil {
		return 0, err
	}

	kept := file.Jobs[:0]
	removed := 0
	for _, job := range file.Jobs {
		created, err := time.Parse(time.RFC3339, job.CreatedAt)
		if err == nil && created.Before(cutoff) {
			removed++
			continue
		}
		kept = append(kept, job)
	}

	if removed == 0 {
		return 0, nil
	}

	file.Jobs = kept
	if err := r.write(file); err != nil {
		return 0, err
	}

	r.log.Info().Int("removed", removed).Msg("Pruned job records")
	return removed, nil
}

func (r *Registry) read() (registryFile, error) {
	var file registryFile

	data, err := os.ReadFile(r.path)
	if os.IsNotExist(err) {
		return registryFile{Jobs: []models.JobRecord{}}, nil
	}
	if err != nil {
		return file, fmt.Errorf("failed to read job registry: %w", err)
	}

	if err := json.Unmarshal(data, &file); err != nil {
		return file, fmt.Errorf("failed to parse job registry %s: %w", r.path, err)
	}
	if file.Jobs == nil {
		file.Jobs = []models.JobRecord{}
	}
	return file, nil
}

func (r *Registry) write(file registryFile) error {
	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode job registry: %w", err)
	}
	if err := os.WriteFile(r.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write job registry: %w", err)
	}
	return nil
}
