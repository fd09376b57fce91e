// Package loader combines resource retrieval, document decoding and
// kinematic-tree construction into single-call entry points.
//
// The conventional package layout mirrors the robot-description
// repositories this format family ships in:
//
//	package://<package>/urdf/<model><suffix>.urdf
//	package://<package>/srdf/<model><suffix>.srdf
//
// [Loader.LoadRobotModel] follows that convention; [Loader.Load] takes
// explicit URIs for everything else.
package loader

import (
	"context"
	"fmt"

	"github.com/florent-lamiraux/hpp-model-urdf/pkg/model"
	"github.com/florent-lamiraux/hpp-model-urdf/pkg/resource"
	"github.com/florent-lamiraux/hpp-model-urdf/pkg/srdf"
	"github.com/florent-lamiraux/hpp-model-urdf/pkg/urdf"
)

// Result bundles a built robot with the semantic annotations loaded
// alongside it. DisabledCollisions is nil when no semantic description
// was requested.
type Result struct {
	Robot              *model.Robot
	DisabledCollisions []srdf.CollisionPair
}

// Loader loads and builds robot models through a resource retriever.
type Loader struct {
	retriever resource.Retriever
	parser    *model.Parser
}

// New creates a Loader. Parser options (such as a role table override)
// are forwarded to the underlying model parser.
func New(retriever resource.Retriever, opts ...model.Option) *Loader {
	return &Loader{
		retriever: retriever,
		parser:    model.NewParser(opts...),
	}
}

// Load fetches and builds a model from an explicit description URI.
// With a non-empty semantic URI the SRDF document is loaded as well.
func (l *Loader) Load(ctx context.Context, urdfURI, srdfURI string) (*Result, error) {
	data, err := l.retriever.Get(ctx, urdfURI)
	if err != nil {
		return nil, fmt.Errorf("fetch description %s: %w", urdfURI, err)
	}
	doc, err := urdf.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", urdfURI, err)
	}
	robot, err := l.parser.Build(ctx, doc)
	if err != nil {
		return nil, err
	}

	result := &Result{Robot: robot}
	if srdfURI != "" {
		data, err := l.retriever.Get(ctx, srdfURI)
		if err != nil {
			return nil, fmt.Errorf("fetch semantic description %s: %w", srdfURI, err)
		}
		semantic, err := srdf.Decode(data)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", srdfURI, err)
		}
		result.DisabledCollisions = semantic.DisabledCollisions
	}
	return result, nil
}

// LoadRobotModel builds a model from the conventional package layout,
// loading both the description and its semantic companion.
func (l *Loader) LoadRobotModel(ctx context.Context, pkg, modelName, urdfSuffix, srdfSuffix string) (*Result, error) {
	urdfURI := fmt.Sprintf("package://%s/urdf/%s%s.urdf", pkg, modelName, urdfSuffix)
	srdfURI := fmt.Sprintf("package://%s/srdf/%s%s.srdf", pkg, modelName, srdfSuffix)
	return l.Load(ctx, urdfURI, srdfURI)
}

// LoadHumanoidModel is [Loader.LoadRobotModel] for humanoid robots: it
// additionally requires that the naming convention resolved at least one
// derived end-effector frame, since a humanoid model without hands or
// feet cannot drive downstream planning.
func (l *Loader) LoadHumanoidModel(ctx context.Context, pkg, modelName, urdfSuffix, srdfSuffix string) (*Result, error) {
	result, err := l.LoadRobotModel(ctx, pkg, modelName, urdfSuffix, srdfSuffix)
	if err != nil {
		return nil, err
	}

	a := result.Robot.Anatomy()
	if a.LeftHand == nil && a.RightHand == nil && a.LeftFoot == nil && a.RightFoot == nil {
		return nil, fmt.Errorf("model %s resolved no end-effector frames; check the anatomy role table", modelName)
	}
	return result, nil
}

// LoadURDFModel builds a model from the description alone, without a
// semantic companion.
func (l *Loader) LoadURDFModel(ctx context.Context, pkg, filename string) (*Result, error) {
	uri := fmt.Sprintf("package://%s/urdf/%s.urdf", pkg, filename)
	return l.Load(ctx, uri, "")
}
