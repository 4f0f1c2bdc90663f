// Package seed populates an empty substrate with sample data and wipes it again.
package seed

import (
	"context"
	_ "embed"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/educonnect/educonnect/core"
	"github.com/educonnect/educonnect/core/course"
	"github.com/educonnect/educonnect/core/user"
)

//go:embed sample.yaml
var sampleYAML []byte

type sampleUser struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
	Role     string `yaml:"role"`
}

type sampleCourse struct {
	ID           string `yaml:"id"`
	Title        string `yaml:"title"`
	Description  string `yaml:"description"`
	EducatorID   string `yaml:"educatorId"`
	EducatorName string `yaml:"educatorName"`
	Duration     string `yaml:"duration"`
	Level        string `yaml:"level"`
	Category     string `yaml:"category"`
	Thumbnail    string `yaml:"thumbnail"`
}

type fixture struct {
	Users   []sampleUser   `yaml:"users"`
	Courses []sampleCourse `yaml:"courses"`
}

func loadFixture() (fixture, error) {
	var fx fixture
	if err := yaml.Unmarshal(sampleYAML, &fx); err != nil {
		return fixture{}, errors.Wrap(err, "decoding sample data")
	}
	return fx, nil
}

// SampleData writes the sample users and courses, empty assignment and submission
// collections, and the seeded flag, unless the flag is already set.
// It reports whether anything was written.
func SampleData(ctx context.Context, kv core.KVStore, now time.Time) (bool, error) {
	seeded, err := core.KVHas(ctx, kv, core.KeySeeded)
	if err != nil {
		return false, err
	}
	if seeded {
		return false, nil
	}

	fx, err := loadFixture()
	if err != nil {
		return false, err
	}

	users := make([]user.User, 0, len(fx.Users))
	for _, su := range fx.Users {
		usr := user.User{ID: su.ID, Name: su.Name, Email: su.Email, Role: su.Role}
		if err := usr.SetPassword(su.Password); err != nil {
			return false, errors.Wrapf(err, "hashing password of %s", su.ID)
		}
		users = append(users, usr)
	}
	if err := user.NewRepository(kv, nil).SaveUsers(ctx, users); err != nil {
		return false, err
	}

	createdAt := now.UTC()
	courses := make([]course.Course, 0, len(fx.Courses))
	for _, sc := range fx.Courses {
		courses = append(courses, course.Course{
			ID:               sc.ID,
			Title:            sc.Title,
			Description:      sc.Description,
			EducatorID:       sc.EducatorID,
			EducatorName:     sc.EducatorName,
			Duration:         sc.Duration,
			Level:            sc.Level,
			Category:         sc.Category,
			Thumbnail:        sc.Thumbnail,
			EnrolledStudents: []string{},
			Content:          []course.ContentItem{},
			CreatedAt:        createdAt,
		})
	}

	collections := []struct {
		key string
		val interface{}
	}{
		{core.KeyCourses, courses},
		{core.KeyAssignments, []course.Assignment{}},
		{core.KeySubmissions, []course.Submission{}},
	}
	for _, col := range collections {
		data, err := json.Marshal(col.val)
		if err != nil {
			return false, errors.Wrapf(err, "encoding %s", col.key)
		}
		if err := kv.Set(ctx, col.key, string(data)); err != nil {
			return false, errors.Wrapf(err, "saving %s", col.key)
		}
	}

	if err := kv.Set(ctx, core.KeySeeded, "true"); err != nil {
		return false, errors.Wrap(err, "saving seeded flag")
	}
	return true, nil
}

// ClearAll removes every application key, the seeded flag and the session included.
func ClearAll(ctx context.Context, kv core.KVStore) error {
	return errors.Wrap(kv.Remove(ctx, core.AllKeys...), "clearing data")
}
