package registry

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/carlmjohnson/requests"
	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/panelkit/panelship/pkg/domain/interfaces"
	"github.com/panelkit/panelship/pkg/domain/model"
	"github.com/panelkit/panelship/pkg/domain/types"
	"github.com/samber/lo"
)

type client struct {
	baseURL     string
	requestID   string
	token       string
	httpClient  *http.Client
	codebaseDir string
	excludes    []string
}

// Option configures the registry client
type Option func(*client)

// WithToken sets the bearer token used for every request
func WithToken(token string) Option {
	return func(c *client) {
		c.token = token
	}
}

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *client) {
		c.httpClient = hc
	}
}

// WithCodebase sets the directory packed on publish and the top-level entries to skip
func WithCodebase(dir string, excludes []string) Option {
	return func(c *client) {
		c.codebaseDir = dir
		c.excludes = excludes
	}
}

// NewClient creates a RegistryClient for the marketplace API at baseURL. All
// requests of a client share one X-Request-Id so a release can be traced on
// the registry side.
func NewClient(baseURL string, opts ...Option) (interfaces.RegistryClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid registry URL", goerr.V("url", baseURL), goerr.T(types.ErrTagConfig))
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, goerr.New("registry URL must be http or https", goerr.V("url", baseURL), goerr.T(types.ErrTagConfig))
	}

	// Relative paths are resolved against the base, so it must end with a slash
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}

	c := &client{
		baseURL:     u.String(),
		requestID:   uuid.NewString(),
		httpClient:  http.DefaultClient,
		codebaseDir: ".",
		excludes:    DefaultExcludes,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *client) request() *requests.Builder {
	rb := requests.URL(c.baseURL).
		Client(c.httpClient).
		UserAgent("panelship/" + types.Version).
		Header("X-Request-Id", c.requestID)
	if c.token != "" {
		rb = rb.Bearer(c.token)
	}
	return rb
}

// GetProject resolves a project by its identifier
func (c *client) GetProject(ctx context.Context, projectID string) (*model.Project, error) {
	var project model.Project
	err := c.request().
		Pathf("projects/%s", url.PathEscape(projectID)).
		ToJSON(&project).
		Fetch(ctx)
	if err != nil {
		if requests.HasStatusErr(err, http.StatusNotFound) {
			return nil, goerr.Wrap(err, "project not found", goerr.V("project_id", projectID), goerr.T(types.ErrTagNotFound))
		}
		return nil, goerr.Wrap(err, "failed to get project", goerr.V("project_id", projectID))
	}
	return &project, nil
}

type publishRequest struct {
	Manifest json.RawMessage `json:"manifest"`
	Codebase []byte          `json:"codebase"`
}

// PublishPackage uploads the manifest with the zipped codebase as a new package revision
func (c *client) PublishPackage(ctx context.Context, project *model.Project, manifest *model.Manifest) (*model.Package, error) {
	logger := ctxlog.From(ctx)

	codebase, err := Archive(c.codebaseDir, c.excludes)
	if err != nil {
		return nil, err
	}
	logger.Debug("Packed codebase", "dir", c.codebaseDir, "size_bytes", len(codebase))

	var pkg model.Package
	err = c.request().
		Pathf("projects/%s/dpks", url.PathEscape(project.ID)).
		BodyJSON(&publishRequest{
			Manifest: json.RawMessage(manifest.Raw),
			Codebase: codebase,
		}).
		ToJSON(&pkg).
		Fetch(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to publish package",
			goerr.V("project_id", project.ID),
			goerr.V("name", manifest.Name),
			goerr.V("version", manifest.Version),
		)
	}
	return &pkg, nil
}

type appList struct {
	Items []*model.App `json:"items"`
}

// GetApp finds the app with exactly the given name in the project
func (c *client) GetApp(ctx context.Context, project *model.Project, name string) (*model.App, error) {
	var list appList
	err := c.request().
		Pathf("projects/%s/apps", url.PathEscape(project.ID)).
		Param("name", name).
		ToJSON(&list).
		Fetch(ctx)
	if err != nil {
		if requests.HasStatusErr(err, http.StatusNotFound) {
			return nil, goerr.Wrap(err, "app not found", goerr.V("name", name), goerr.T(types.ErrTagNotFound))
		}
		return nil, goerr.Wrap(err, "failed to get app", goerr.V("project_id", project.ID), goerr.V("name", name))
	}

	app, ok := lo.Find(list.Items, func(a *model.App) bool {
		return a != nil && a.Name == name
	})
	if !ok {
		return nil, goerr.New("app not found",
			goerr.V("project_id", project.ID),
			goerr.V("name", name),
			goerr.T(types.ErrTagNotFound),
		)
	}
	return app, nil
}

// UpdateApp persists changes of an existing app
func (c *client) UpdateApp(ctx context.Context, app *model.App) (*model.App, error) {
	var updated model.App
	err := c.request().
		Pathf("apps/%s", url.PathEscape(app.ID)).
		Method(http.MethodPatch).
		BodyJSON(app).
		ToJSON(&updated).
		Fetch(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update app", goerr.V("app_id", app.ID))
	}
	return &updated, nil
}

type installRequest struct {
	Name       string `json:"name"`
	DpkName    string `json:"dpkName"`
	DpkVersion string `json:"dpkVersion"`
}

// InstallApp creates an app bound to the package revision
func (c *client) InstallApp(ctx context.Context, project *model.Project, pkg *model.Package, name string) (*model.App, error) {
	var app model.App
	err := c.request().
		Pathf("projects/%s/apps", url.PathEscape(project.ID)).
		BodyJSON(&installRequest{
			Name:       name,
			DpkName:    pkg.Name,
			DpkVersion: pkg.Version,
		}).
		ToJSON(&app).
		Fetch(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to install app",
			goerr.V("project_id", project.ID),
			goerr.V("dpk", pkg.Name),
			goerr.V("version", pkg.Version),
		)
	}
	return &app, nil
}

// CurrentUserEmail reads the email claim of the token, falling back to the users/me endpoint
func (c *client) CurrentUserEmail(ctx context.Context) (string, error) {
	if email := emailFromToken(c.token); email != "" {
		return email, nil
	}

	var me struct {
		Email string `json:"email"`
	}
	if err := c.request().Path("users/me").ToJSON(&me).Fetch(ctx); err != nil {
		return "", goerr.Wrap(err, "failed to get current user")
	}
	if me.Email == "" {
		return "", goerr.New("current user has no email")
	}
	return me.Email, nil
}

// emailFromToken returns the email claim of a JWT, or "" if token is not one.
// The signature is not verified; the registry does that.
func emailFromToken(token string) string {
	if token == "" {
		return ""
	}

	tok, err := jwt.ParseString(token, jwt.WithVerify(false), jwt.WithValidate(false))
	if err != nil {
		return ""
	}

	v, ok := tok.Get("email")
	if !ok {
		return ""
	}
	email, _ := v.(string)
	return email
}
