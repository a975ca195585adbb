package engine

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/chazu/trellis/pkg/pipeline"
	v3 "github.com/deadsy/sdfx/vec/v3"
	zygo "github.com/glycerine/zygomys/zygo"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource transforms Trellis Lisp source code before passing it to
// zygomys. It performs two transformations:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal)
//     This avoids the need to register keyword symbols as globals, which
//     would conflict with user-defined variables of the same name.
//
//  2. Kebab-case to underscore: sync-winding -> sync_winding
//     zygomys does not allow hyphens in identifiers (it interprets them
//     as the subtraction operator). This converts kebab-case identifiers
//     to underscore form outside of strings and comments.
//
// Both transformations respect string literal boundaries and line comments.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Skip double-quoted string literals.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Skip backtick-quoted string literals.
		if b[i] == '`' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '`' {
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Convert ; line comments to // comments for zygomys.
		// zygomys uses // for line comments, not the traditional Lisp ;.
		if b[i] == ';' {
			result = append(result, '/', '/')
			i++
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Transform :keyword to "__kw_keyword".
		if b[i] == ':' && i+1 < len(b) {
			// Preserve := (assignment operator).
			if b[i+1] == '=' {
				result = append(result, b[i], b[i+1])
				i += 2
				continue
			}
			if isLetter(b[i+1]) {
				j := i + 1
				for j < len(b) && isKWChar(b[j]) {
					j++
				}
				kwName := string(b[i+1 : j])
				result = append(result, '"')
				result = append(result, []byte(kwPrefix)...)
				result = append(result, []byte(kwName)...)
				result = append(result, '"')
				i = j
				continue
			}
		}
		// Transform kebab-case identifiers: alpha-alpha -> alpha_alpha.
		// Only when hyphen sits between identifier characters (not a minus
		// operator).
		if b[i] == '-' && i > 0 && i+1 < len(b) &&
			isIdentChar(b[i-1]) && isIdentStartChar(b[i+1]) {
			result = append(result, '_')
			i++
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

func isIdentStartChar(c byte) bool {
	return isLetter(c)
}

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpMeshRef wraps a pipeline.NodeID so mesh expressions can flow between
// builtins.
type sexpMeshRef struct {
	id   pipeline.NodeID
	name string // human-readable name for error messages
}

func (m *sexpMeshRef) SexpString(ps *zygo.PrintState) string {
	if m.name != "" {
		return fmt.Sprintf("(mesh %q)", m.name)
	}
	return fmt.Sprintf("(mesh %s)", m.id.Short())
}
func (m *sexpMeshRef) Type() *zygo.RegisteredType { return nil }

// sexpVec3 wraps a 3D vector.
type sexpVec3 struct {
	vec v3.Vec
}

func (v *sexpVec3) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec3 %.3f %.3f %.3f)", v.vec.X, v.vec.Y, v.vec.Z)
}
func (v *sexpVec3) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
// Keywords are identified by the __kw_ prefix added during preprocessing.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				// Keyword at end with no value: treat as flag with nil.
				result.kw[name] = zygo.SexpNull
				i++
			}
		} else {
			result.positional = append(result.positional, args[i])
			i++
		}
	}
	return result
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toUint extracts a non-negative integer from a Sexp.
func toUint(s zygo.Sexp) (uint, error) {
	v, ok := s.(*zygo.SexpInt)
	if !ok {
		return 0, fmt.Errorf("expected integer, got %T (%s)", s, s.SexpString(nil))
	}
	if v.Val < 0 {
		return 0, fmt.Errorf("expected non-negative integer, got %d", v.Val)
	}
	return uint(v.Val), nil
}

// toInt extracts an int from a Sexp.
func toInt(s zygo.Sexp) (int, error) {
	v, ok := s.(*zygo.SexpInt)
	if !ok {
		return 0, fmt.Errorf("expected integer, got %T (%s)", s, s.SexpString(nil))
	}
	return int(v.Val), nil
}

// toBool extracts a bool from a Sexp.
func toBool(s zygo.Sexp) (bool, error) {
	if v, ok := s.(*zygo.SexpBool); ok {
		return v.Val, nil
	}
	return false, fmt.Errorf("expected true or false, got %T (%s)", s, s.SexpString(nil))
}

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// toMeshRef extracts a NodeID from a sexpMeshRef.
func toMeshRef(s zygo.Sexp) (pipeline.NodeID, error) {
	if ref, ok := s.(*sexpMeshRef); ok {
		return ref.id, nil
	}
	return "", fmt.Errorf("expected mesh expression, got %T (%s)", s, s.SexpString(nil))
}

// toVec3 extracts a vector from a sexpVec3.
func toVec3(s zygo.Sexp) (v3.Vec, error) {
	if v, ok := s.(*sexpVec3); ok {
		return v.vec, nil
	}
	return v3.Vec{}, fmt.Errorf("expected vec3, got %T (%s)", s, s.SexpString(nil))
}

// ---------------------------------------------------------------------------
// Node ID generation
// ---------------------------------------------------------------------------

// nodeCounter provides unique suffixes for anonymous nodes.
var nodeCounter uint64

func nextNodeSuffix() string {
	n := atomic.AddUint64(&nodeCounter, 1)
	return fmt.Sprintf("_anon_%d", n)
}

func newOpID(kind pipeline.NodeKind) pipeline.NodeID {
	return pipeline.NewNodeID(kind.String(), nextNodeSuffix())
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// addNode registers a node and returns the mesh reference handed back to
// user code.
func addNode(p *pipeline.Pipeline, n *pipeline.Node) *sexpMeshRef {
	p.AddNode(n)
	return &sexpMeshRef{id: n.ID, name: n.Name}
}

// unaryChild extracts the single mesh input of an operation form.
func unaryChild(form string, pa kwArgs) (pipeline.NodeID, error) {
	if len(pa.positional) != 1 {
		return "", fmt.Errorf("%s requires a mesh expression as first argument", form)
	}
	id, err := toMeshRef(pa.positional[0])
	if err != nil {
		return "", fmt.Errorf("%s: %w", form, err)
	}
	return id, nil
}

// registerBuiltins installs all Trellis DSL builtins into a zygomys
// environment. The builtins operate on the provided Pipeline, populating it
// during evaluation.
//
// Source code must be preprocessed with preprocessSource() before evaluation
// so that :keyword tokens are converted to recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, p *pipeline.Pipeline) {

	// -----------------------------------------------------------------------
	// (vec3 1 2 3)
	// -----------------------------------------------------------------------
	env.AddFunction("vec3", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("vec3 requires exactly 3 arguments, got %d", len(args))
		}

		var coords [3]float64
		for i, a := range args {
			f, err := toFloat64(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("vec3: argument %d: %w", i+1, err)
			}
			coords[i] = f
		}

		return &sexpVec3{vec: v3.Vec{X: coords[0], Y: coords[1], Z: coords[2]}}, nil
	})

	// -----------------------------------------------------------------------
	// (plane :center (vec3 0 0 0) :scale 1)
	// -----------------------------------------------------------------------
	env.AddFunction("plane", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		pd := pipeline.PlaneData{Scale: 1}

		if v, ok := pa.kw["center"]; ok {
			c, err := toVec3(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("plane: center: %w", err)
			}
			pd.Center = c
		}
		if v, ok := pa.kw["scale"]; ok {
			f, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("plane: scale: %w", err)
			}
			pd.Scale = f
		}

		return addNode(p, &pipeline.Node{
			ID:     newOpID(pipeline.NodePlane),
			Kind:   pipeline.NodePlane,
			Source: "(plane)",
			Data:   pd,
		}), nil
	})

	// -----------------------------------------------------------------------
	// (cube :center (vec3 0 0 0) :scale 1 :sharp true)
	// -----------------------------------------------------------------------
	env.AddFunction("cube", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		cd := pipeline.CubeData{Scale: 1}

		if v, ok := pa.kw["center"]; ok {
			c, err := toVec3(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("cube: center: %w", err)
			}
			cd.Center = c
		}
		if v, ok := pa.kw["scale"]; ok {
			f, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("cube: scale: %w", err)
			}
			cd.Scale = f
		}
		if v, ok := pa.kw["sharp"]; ok {
			b, err := toBool(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("cube: sharp: %w", err)
			}
			cd.Sharp = b
		}

		return addNode(p, &pipeline.Node{
			ID:     newOpID(pipeline.NodeCube),
			Kind:   pipeline.NodeCube,
			Source: "(cube)",
			Data:   cd,
		}), nil
	})

	// -----------------------------------------------------------------------
	// (sphere :radius 5 :cells 64)
	// -----------------------------------------------------------------------
	env.AddFunction("sphere", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		sd := pipeline.SphereData{Radius: 1}

		if v, ok := pa.kw["radius"]; ok {
			f, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("sphere: radius: %w", err)
			}
			sd.Radius = f
		}
		if v, ok := pa.kw["cells"]; ok {
			n, err := toInt(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("sphere: cells: %w", err)
			}
			sd.Cells = n
		}

		return addNode(p, &pipeline.Node{
			ID:     newOpID(pipeline.NodeSphere),
			Kind:   pipeline.NodeSphere,
			Source: "(sphere)",
			Data:   sd,
		}), nil
	})

	// -----------------------------------------------------------------------
	// (box :size (vec3 1 2 3) :cells 64)
	// -----------------------------------------------------------------------
	env.AddFunction("box", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		bd := pipeline.BoxData{Size: v3.Vec{X: 1, Y: 1, Z: 1}}

		if v, ok := pa.kw["size"]; ok {
			s, err := toVec3(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("box: size: %w", err)
			}
			bd.Size = s
		}
		if v, ok := pa.kw["cells"]; ok {
			n, err := toInt(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("box: cells: %w", err)
			}
			bd.Cells = n
		}

		return addNode(p, &pipeline.Node{
			ID:     newOpID(pipeline.NodeBox),
			Kind:   pipeline.NodeBox,
			Source: "(box)",
			Data:   bd,
		}), nil
	})

	// -----------------------------------------------------------------------
	// (relax m :iterations 10 :anchor-borders true :stop-when-stable true)
	// -----------------------------------------------------------------------
	env.AddFunction("relax", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		child, err := unaryChild("relax", pa)
		if err != nil {
			return zygo.SexpNull, err
		}

		rd := pipeline.RelaxData{Iterations: 1}
		if v, ok := pa.kw["iterations"]; ok {
			n, err := toUint(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("relax: iterations: %w", err)
			}
			rd.Iterations = n
		}
		if v, ok := pa.kw["anchor-borders"]; ok {
			b, err := toBool(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("relax: anchor-borders: %w", err)
			}
			rd.AnchorBorders = b
		}
		if v, ok := pa.kw["stop-when-stable"]; ok {
			b, err := toBool(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("relax: stop-when-stable: %w", err)
			}
			rd.StopWhenStable = b
		}

		return addNode(p, &pipeline.Node{
			ID:       newOpID(pipeline.NodeRelax),
			Kind:     pipeline.NodeRelax,
			Source:   "(relax)",
			Children: []pipeline.NodeID{child},
			Data:     rd,
		}), nil
	})

	// -----------------------------------------------------------------------
	// (weld m :tolerance 0.001)
	// -----------------------------------------------------------------------
	env.AddFunction("weld", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		child, err := unaryChild("weld", pa)
		if err != nil {
			return zygo.SexpNull, err
		}

		wd := pipeline.WeldData{Tolerance: 0.001}
		if v, ok := pa.kw["tolerance"]; ok {
			f, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("weld: tolerance: %w", err)
			}
			wd.Tolerance = f
		}

		return addNode(p, &pipeline.Node{
			ID:       newOpID(pipeline.NodeWeld),
			Kind:     pipeline.NodeWeld,
			Source:   "(weld)",
			Children: []pipeline.NodeID{child},
			Data:     wd,
		}), nil
	})

	// -----------------------------------------------------------------------
	// (sync-winding m)
	//
	// Note: registered as "sync_winding" because zygomys does not support
	// hyphens in identifiers. The preprocessor converts sync-winding to
	// sync_winding in the source.
	// -----------------------------------------------------------------------
	env.AddFunction("sync_winding", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		child, err := unaryChild("sync-winding", pa)
		if err != nil {
			return zygo.SexpNull, err
		}

		return addNode(p, &pipeline.Node{
			ID:       newOpID(pipeline.NodeSyncWinding),
			Kind:     pipeline.NodeSyncWinding,
			Source:   "(sync-winding)",
			Children: []pipeline.NodeID{child},
			Data:     pipeline.SyncWindingData{},
		}), nil
	})

	// -----------------------------------------------------------------------
	// (revert-faces m)
	// -----------------------------------------------------------------------
	env.AddFunction("revert_faces", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		child, err := unaryChild("revert-faces", pa)
		if err != nil {
			return zygo.SexpNull, err
		}

		return addNode(p, &pipeline.Node{
			ID:       newOpID(pipeline.NodeRevertFaces),
			Kind:     pipeline.NodeRevertFaces,
			Source:   "(revert-faces)",
			Children: []pipeline.NodeID{child},
			Data:     pipeline.RevertFacesData{},
		}), nil
	})

	// -----------------------------------------------------------------------
	// (separate m)
	// -----------------------------------------------------------------------
	env.AddFunction("separate", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		child, err := unaryChild("separate", pa)
		if err != nil {
			return zygo.SexpNull, err
		}

		return addNode(p, &pipeline.Node{
			ID:       newOpID(pipeline.NodeSeparate),
			Kind:     pipeline.NodeSeparate,
			Source:   "(separate)",
			Children: []pipeline.NodeID{child},
			Data:     pipeline.SeparateData{},
		}), nil
	})

	// -----------------------------------------------------------------------
	// (join a b)
	// -----------------------------------------------------------------------
	env.AddFunction("join", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) != 2 {
			return zygo.SexpNull, fmt.Errorf("join requires exactly 2 mesh expressions, got %d", len(pa.positional))
		}

		first, err := toMeshRef(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("join: first: %w", err)
		}
		second, err := toMeshRef(pa.positional[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("join: second: %w", err)
		}

		return addNode(p, &pipeline.Node{
			ID:       newOpID(pipeline.NodeJoin),
			Kind:     pipeline.NodeJoin,
			Source:   "(join)",
			Children: []pipeline.NodeID{first, second},
			Data:     pipeline.JoinData{},
		}), nil
	})

	// -----------------------------------------------------------------------
	// (subdivide m :iterations 1)
	// -----------------------------------------------------------------------
	env.AddFunction("subdivide", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		child, err := unaryChild("subdivide", pa)
		if err != nil {
			return zygo.SexpNull, err
		}

		sd := pipeline.SubdivideData{Iterations: 1}
		if v, ok := pa.kw["iterations"]; ok {
			n, err := toUint(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("subdivide: iterations: %w", err)
			}
			sd.Iterations = n
		}

		return addNode(p, &pipeline.Node{
			ID:       newOpID(pipeline.NodeSubdivide),
			Kind:     pipeline.NodeSubdivide,
			Source:   "(subdivide)",
			Children: []pipeline.NodeID{child},
			Data:     sd,
		}), nil
	})

	// -----------------------------------------------------------------------
	// (voxelize m :voxel-size (vec3 1 1 1) :growth 1 :fill true)
	// -----------------------------------------------------------------------
	env.AddFunction("voxelize", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		child, err := unaryChild("voxelize", pa)
		if err != nil {
			return zygo.SexpNull, err
		}

		vd := pipeline.VoxelizeData{VoxelSize: v3.Vec{X: 1, Y: 1, Z: 1}}
		if v, ok := pa.kw["voxel-size"]; ok {
			s, err := toVec3(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("voxelize: voxel-size: %w", err)
			}
			vd.VoxelSize = s
		}
		if v, ok := pa.kw["growth"]; ok {
			n, err := toUint(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("voxelize: growth: %w", err)
			}
			vd.Growth = n
		}
		if v, ok := pa.kw["fill"]; ok {
			b, err := toBool(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("voxelize: fill: %w", err)
			}
			vd.Fill = b
		}

		return addNode(p, &pipeline.Node{
			ID:       newOpID(pipeline.NodeVoxelize),
			Kind:     pipeline.NodeVoxelize,
			Source:   "(voxelize)",
			Children: []pipeline.NodeID{child},
			Data:     vd,
		}), nil
	})

	// -----------------------------------------------------------------------
	// (defmesh "name" expr)
	// -----------------------------------------------------------------------
	env.AddFunction("defmesh", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 2 {
			return zygo.SexpNull, fmt.Errorf("defmesh requires a name and a mesh expression")
		}

		meshName, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("defmesh: name: %w", err)
		}

		id, err := toMeshRef(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("defmesh: %w", err)
		}

		node := p.Get(id)
		if node == nil {
			return zygo.SexpNull, fmt.Errorf("defmesh: unknown mesh expression")
		}
		node.Name = meshName
		p.NameIndex[meshName] = id

		return &sexpMeshRef{id: id, name: meshName}, nil
	})

	// -----------------------------------------------------------------------
	// (output m)
	// -----------------------------------------------------------------------
	env.AddFunction("output", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("output requires exactly 1 mesh expression, got %d", len(args))
		}

		id, err := toMeshRef(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("output: %w", err)
		}

		p.AddRoot(id)
		return args[0], nil
	})
}
