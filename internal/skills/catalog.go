// Package skills provides the technology skill catalog, alias normalization and
// whole-word skill detection used to compare resumes with job descriptions.
package skills

import "sort"

// Category groups related catalog terms.
type Category struct {
	Name  string
	Terms []string
}

// catalog lists every known term by category. Terms are lowercase. Some spellings
// appear both here and in aliases so that either form is detected.
var catalog = []Category{
	{Name: "languages", Terms: []string{
		"python", "javascript", "typescript", "java", "c++", "c#", "golang",
		"go", "rust", "ruby", "php", "swift", "kotlin", "scala", "r",
		"matlab", "perl", "haskell", "elixir", "dart", "lua", "julia",
	}},
	{Name: "frontend", Terms: []string{
		"react", "react.js", "reactjs", "angular", "vue", "vue.js", "vuejs",
		"svelte", "next.js", "nextjs", "nuxt", "gatsby", "html", "html5",
		"css", "css3", "sass", "scss", "tailwind", "tailwindcss", "bootstrap",
		"material ui", "mui", "chakra ui", "webpack", "vite", "redux",
		"zustand", "graphql", "apollo", "jquery",
	}},
	{Name: "backend", Terms: []string{
		"node.js", "nodejs", "express", "express.js", "django", "flask",
		"fastapi", "spring", "spring boot", "springboot", "laravel", "rails",
		"ruby on rails", "asp.net", "dotnet", ".net", "nestjs", "nest.js",
		"fastify", "gin", "fiber", "echo", "actix", "rocket",
	}},
	{Name: "databases", Terms: []string{
		"sql", "mysql", "postgresql", "postgres", "sqlite", "mongodb",
		"redis", "cassandra", "dynamodb", "firebase", "supabase",
		"elasticsearch", "neo4j", "oracle", "mssql", "mariadb",
		"couchdb", "influxdb", "prisma", "sequelize", "sqlalchemy",
		"mongoose", "typeorm",
	}},
	{Name: "devops_cloud", Terms: []string{
		"docker", "kubernetes", "k8s", "aws", "azure", "gcp",
		"google cloud", "heroku", "vercel", "netlify", "digitalocean",
		"terraform", "ansible", "jenkins", "github actions", "gitlab ci",
		"circleci", "travis ci", "ci/cd", "nginx", "apache", "linux",
		"ubuntu", "bash", "shell", "powershell", "helm", "istio",
	}},
	{Name: "data_ml", Terms: []string{
		"machine learning", "deep learning", "neural networks", "nlp",
		"computer vision", "tensorflow", "pytorch", "keras", "scikit-learn",
		"sklearn", "pandas", "numpy", "matplotlib", "seaborn", "plotly",
		"jupyter", "spark", "hadoop", "airflow", "mlflow", "huggingface",
		"transformers", "langchain", "openai", "data science", "analytics",
		"tableau", "power bi", "looker", "dbt", "snowflake", "databricks",
	}},
	{Name: "tools", Terms: []string{
		"git", "github", "gitlab", "bitbucket", "jira", "confluence",
		"slack", "figma", "postman", "swagger", "rest", "rest api",
		"graphql", "grpc", "websockets", "oauth", "jwt", "microservices",
		"agile", "scrum", "kanban", "tdd", "bdd", "unit testing",
		"jest", "pytest", "selenium", "cypress", "playwright",
	}},
	{Name: "mobile", Terms: []string{
		"react native", "flutter", "android", "ios", "swift", "kotlin",
		"xamarin", "ionic", "capacitor", "expo",
	}},
}

// aliases maps a non-canonical spelling to its canonical term.
var aliases = map[string]string{
	"react.js": "react",
	"reactjs":  "react",
	"vue.js":   "vue",
	"vuejs":    "vue",

	"node.js": "nodejs",
	"next.js": "nextjs",

	"postgres": "postgresql",
	"mariadb":  "mysql",

	"sklearn": "scikit-learn",
	"ml":      "machine learning",
	"dl":      "deep learning",

	"k8s":           "kubernetes",
	"gcp":           "google cloud",
	"springboot":    "spring boot",
	"spring-boot":   "spring boot",
	"ruby-on-rails": "ruby on rails",
	"rest api":      "rest",

	".net":    "dotnet",
	"asp.net": "dotnet",
	"aspnet":  "dotnet",

	"ci-cd":         "ci/cd",
	"github-action": "github actions",

	"unit-testing": "unit testing",
	"bdd":          "bdd",
	"tdd":          "tdd",
}

var allTerms = buildAllTerms(catalog)

func buildAllTerms(categories []Category) map[string]struct{} {
	set := make(map[string]struct{})
	for _, c := range categories {
		for _, term := range c.Terms {
			set[term] = struct{}{}
		}
	}
	return set
}

// Categories returns a copy of the categorized catalog.
func Categories() []Category {
	out := make([]Category, len(catalog))
	for i, c := range catalog {
		out[i] = Category{Name: c.Name, Terms: append([]string(nil), c.Terms...)}
	}
	return out
}

// All returns the flat, sorted set of catalog terms.
func All() []string {
	out := make([]string, 0, len(allTerms))
	for term := range allTerms {
		out = append(out, term)
	}
	sort.Strings(out)
	return out
}

// Aliases returns a copy of the alias map.
func Aliases() map[string]string {
	out := make(map[string]string, len(aliases))
	for k, v := range aliases {
		out[k] = v
	}
	return out
}

// IsKnown reports whether term is a catalog term or alias (case-insensitive).
func IsKnown(term string) bool {
	n := lowerTrim(term)
	if _, ok := allTerms[n]; ok {
		return true
	}
	_, ok := aliases[n]
	return ok
}
