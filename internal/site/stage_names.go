package site

// StageName is a strongly-typed identifier for a build stage.
type StageName string

// Canonical stage names, in execution order.
const (
	StagePrepareOutput    StageName = "prepare_output"
	StageLoadContent      StageName = "load_content"
	StageNavigation       StageName = "navigation"
	StageRenderPages      StageName = "render_pages"
	StageRenderPosts      StageName = "render_posts"
	StageRenderHome       StageName = "render_home"
	StageRenderArchive    StageName = "render_archive"
	StageRenderTaxonomies StageName = "render_taxonomies"
	StageVerifyLinks      StageName = "verify_links"
)

// StageDef pairs a stage name with its executing function.
type StageDef struct {
	Name StageName
	Fn   Stage
}

// Pipeline is an ordered list of stages under construction.
type Pipeline struct {
	defs []StageDef
}

// NewPipeline returns an empty pipeline.
func NewPipeline() *Pipeline { return &Pipeline{} }

// Add appends a stage.
func (p *Pipeline) Add(name StageName, fn Stage) *Pipeline {
	p.defs = append(p.defs, StageDef{Name: name, Fn: fn})
	return p
}

// Build returns the stages in the order they were added.
func (p *Pipeline) Build() []StageDef {
	return append([]StageDef(nil), p.defs...)
}
