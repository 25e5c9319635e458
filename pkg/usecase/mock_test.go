package usecase_test

import (
	"context"
	"errors"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/panelkit/panelship/pkg/domain/model"
	"github.com/panelkit/panelship/pkg/domain/types"
	"github.com/slack-go/slack"
)

// MockRunner records commands and delegates to optional hooks
type MockRunner struct {
	runFunc    func(name string, args ...string) error
	outputFunc func(name string, args ...string) (string, error)
	calls      []string
}

func (m *MockRunner) Run(ctx context.Context, name string, args ...string) error {
	m.calls = append(m.calls, strings.Join(append([]string{name}, args...), " "))
	if m.runFunc != nil {
		return m.runFunc(name, args...)
	}
	return nil
}

func (m *MockRunner) Output(ctx context.Context, name string, args ...string) (string, error) {
	m.calls = append(m.calls, strings.Join(append([]string{name}, args...), " "))
	if m.outputFunc != nil {
		return m.outputFunc(name, args...)
	}
	return "", errors.New("mock not configured")
}

// MockRegistry is an in-memory RegistryClient
type MockRegistry struct {
	getProjectFunc     func(projectID string) (*model.Project, error)
	publishPackageFunc func(project *model.Project, manifest *model.Manifest) (*model.Package, error)
	getAppFunc         func(project *model.Project, name string) (*model.App, error)
	updateAppFunc      func(app *model.App) (*model.App, error)
	installAppFunc     func(project *model.Project, pkg *model.Package, name string) (*model.App, error)
	emailFunc          func() (string, error)

	updateCalls  []*model.App
	installCalls []string
}

func (m *MockRegistry) GetProject(ctx context.Context, projectID string) (*model.Project, error) {
	if m.getProjectFunc != nil {
		return m.getProjectFunc(projectID)
	}
	return &model.Project{ID: projectID, Name: "test-project"}, nil
}

func (m *MockRegistry) PublishPackage(ctx context.Context, project *model.Project, manifest *model.Manifest) (*model.Package, error) {
	if m.publishPackageFunc != nil {
		return m.publishPackageFunc(project, manifest)
	}
	return &model.Package{
		ID:          "dpk-id",
		Name:        manifest.Name,
		Version:     manifest.Version,
		DisplayName: manifest.DisplayName,
	}, nil
}

func (m *MockRegistry) GetApp(ctx context.Context, project *model.Project, name string) (*model.App, error) {
	if m.getAppFunc != nil {
		return m.getAppFunc(project, name)
	}
	return nil, errNotFound()
}

func (m *MockRegistry) UpdateApp(ctx context.Context, app *model.App) (*model.App, error) {
	copied := *app
	m.updateCalls = append(m.updateCalls, &copied)
	if m.updateAppFunc != nil {
		return m.updateAppFunc(app)
	}
	return app, nil
}

func (m *MockRegistry) InstallApp(ctx context.Context, project *model.Project, pkg *model.Package, name string) (*model.App, error) {
	m.installCalls = append(m.installCalls, name)
	if m.installAppFunc != nil {
		return m.installAppFunc(project, pkg, name)
	}
	return &model.App{
		ID:         "new-app-id",
		Name:       name,
		ProjectID:  project.ID,
		DpkName:    pkg.Name,
		DpkVersion: pkg.Version,
	}, nil
}

func (m *MockRegistry) CurrentUserEmail(ctx context.Context) (string, error) {
	if m.emailFunc != nil {
		return m.emailFunc()
	}
	return "registry-user@example.com", nil
}

// MockPoster records posted messages
type MockPoster struct {
	postFunc func(url string, msg *slack.WebhookMessage) error
	urls     []string
	messages []*slack.WebhookMessage
}

func (m *MockPoster) Post(ctx context.Context, url string, msg *slack.WebhookMessage) error {
	m.urls = append(m.urls, url)
	m.messages = append(m.messages, msg)
	if m.postFunc != nil {
		return m.postFunc(url, msg)
	}
	return nil
}

type MockBuilder struct {
	err   error
	calls int
}

func (m *MockBuilder) Build(ctx context.Context) error {
	m.calls++
	return m.err
}

type MockBumper struct {
	version string
	err     error
	kinds   []types.BumpKind
}

func (m *MockBumper) Bump(ctx context.Context, kind types.BumpKind) (string, error) {
	m.kinds = append(m.kinds, kind)
	return m.version, m.err
}

type MockNotifier struct {
	sent          bool
	err           error
	notifications []*model.Notification
}

func (m *MockNotifier) Notify(ctx context.Context, n *model.Notification) (bool, error) {
	m.notifications = append(m.notifications, n)
	return m.sent, m.err
}

func errNotFound() error {
	return goerr.New("app not found", goerr.T(types.ErrTagNotFound))
}
