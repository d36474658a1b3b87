package seed

import (
	"fmt"
	"strings"
)

const (
	DefaultPassword     = "Password123!"
	DefaultWorkspaces   = 10
	DefaultUsersPerTeam = 5
	teamsPerWorkspace   = 4
	emailDomain         = "example.com"
)

var workspaceNames = []string{
	"TechCorp", "DesignHub", "CloudWave", "DataSync", "FinEdge",
	"HealthNet", "RetailPro", "MediaFlow", "BuildForce", "LaunchPad",
}

var teamSets = map[string][teamsPerWorkspace]string{
	"TechCorp":   {"Engineering", "QA", "DevOps", "Product"},
	"DesignHub":  {"UI/UX", "Brand", "Motion", "Research"},
	"CloudWave":  {"Platform", "Security", "Infrastructure", "Support"},
	"DataSync":   {"Data Engineering", "Analytics", "ML", "BI"},
	"FinEdge":    {"Payments", "Risk", "Compliance", "Growth"},
	"HealthNet":  {"Clinical Tech", "Integrations", "Mobile", "Ops"},
	"RetailPro":  {"Catalog", "Fulfillment", "Customer Success", "Marketing"},
	"MediaFlow":  {"Content", "Distribution", "Ads", "Creator Tools"},
	"BuildForce": {"Frontend", "Backend", "Architecture", "Tooling"},
	"LaunchPad":  {"Growth", "Partnerships", "Community", "Marketing"},
}

var defaultTeams = [teamsPerWorkspace]string{"Engineering", "Marketing", "Design", "Operations"}

var firstNames = []string{
	"Alice", "Bob", "Carol", "David", "Eva", "Frank", "Grace", "Hiro",
	"Irina", "James", "Keiko", "Liam", "Maya", "Noah", "Olivia", "Pedro",
	"Quinn", "Rachel", "Sam", "Tara", "Uma", "Victor", "Wendy", "Xander",
	"Yara", "Zoe", "Aaron", "Bella", "Carlos", "Diana", "Ethan", "Fiona",
	"George", "Hannah", "Ivan", "Julia", "Kyle", "Laura", "Mike", "Nina",
}

var lastNames = []string{
	"Smith", "Jones", "Williams", "Brown", "Taylor", "Davies", "Evans",
	"Wilson", "Thomas", "Roberts", "Johnson", "White", "Martin", "Anderson",
	"Clark", "Lewis", "Robinson", "Walker", "Young", "Hall", "Allen",
	"Wright", "Scott", "King", "Green", "Baker", "Adams", "Nelson",
	"Carter", "Mitchell", "Perez", "Turner", "Phillips", "Campbell", "Parker",
}

type Person struct {
	Name  string
	Email string
}

type TeamPlan struct {
	Name    string
	Manager Person
	Members []Person
}

type WorkspacePlan struct {
	Name  string
	Admin Person
	Teams []TeamPlan
}

// Plan is the full data set one seed run inserts. It is deterministic for a
// given workspace and member count.
type Plan struct {
	Workspaces []WorkspacePlan
}

func (p Plan) Counts() (workspaces, teams, users int) {
	for _, ws := range p.Workspaces {
		workspaces++
		users++
		for _, t := range ws.Teams {
			teams++
			users += 1 + len(t.Members)
		}
	}
	return workspaces, teams, users
}

type nameGen struct{ i int }

func (g *nameGen) next() Person {
	first := firstNames[g.i%len(firstNames)]
	last := lastNames[(g.i/len(firstNames))%len(lastNames)]
	email := strings.ToLower(first + "." + last)
	if g.i > 0 {
		email += fmt.Sprint(g.i)
	}
	g.i++
	return Person{Name: first + " " + last, Email: email + "@" + emailDomain}
}

// BuildPlan lays out workspaces, each with an ADMIN and four teams of one
// MANAGER plus usersPerTeam USERs. Workspaces past the named pool are numbered.
func BuildPlan(workspaces, usersPerTeam int) Plan {
	var g nameGen
	plan := Plan{Workspaces: make([]WorkspacePlan, 0, workspaces)}

	for w := 0; w < workspaces; w++ {
		name := fmt.Sprintf("Workspace %d", w+1)
		if w < len(workspaceNames) {
			name = workspaceNames[w]
		}
		teams, ok := teamSets[name]
		if !ok {
			teams = defaultTeams
		}

		ws := WorkspacePlan{Name: name, Admin: g.next()}
		for _, teamName := range teams {
			tp := TeamPlan{Name: teamName, Manager: g.next()}
			for i := 0; i < usersPerTeam; i++ {
				tp.Members = append(tp.Members, g.next())
			}
			ws.Teams = append(ws.Teams, tp)
		}
		plan.Workspaces = append(plan.Workspaces, ws)
	}
	return plan
}
