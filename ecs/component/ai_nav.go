package component

import "github.com/milk9111/witchwood/nav"

// NavAgent binds an entity to its grid navigator. The nav system copies the
// agent's pose into Transform after stepping.
type NavAgent struct {
	Agent *nav.Agent
}

var NavAgentComponent = NewComponent[NavAgent]()
