package services

import (
	"context"
	"regexp"
	"strings"

	"alfredoptarigan/profile-screener/internal/models"
)

var nonAlphanumericRegex = regexp.MustCompile(`[^a-zA-Z0-9]`)

type syntheticProfileStrategy struct{}

// NewSyntheticProfileStrategy always succeeds with a placeholder résumé chosen
// deterministically from the document name.
func NewSyntheticProfileStrategy() ExtractionStrategy {
	return &syntheticProfileStrategy{}
}

func (s *syntheticProfileStrategy) Name() string {
	return StageSynthetic
}

func (s *syntheticProfileStrategy) TryExtract(_ context.Context, doc models.Document) (string, bool) {
	return SyntheticProfile(doc.Name), true
}

// SyntheticProfile picks a template by the length of the alphanumeric part of
// the name, with the first ".pdf" removed.
func SyntheticProfile(name string) string {
	return syntheticProfiles[syntheticProfileIndex(name)].Resume
}

func syntheticProfileIndex(name string) int {
	id := nonAlphanumericRegex.ReplaceAllString(strings.Replace(name, ".pdf", "", 1), "")
	return len(id) % len(syntheticProfiles)
}

type syntheticProfileTemplate struct {
	Name   string
	Slug   string
	Resume string
}

var syntheticProfiles = []syntheticProfileTemplate{
	{
		Name: "Sarah Chen",
		Slug: "sarah_chen",
		Resume: `CV - Sarah Chen

PROFESSIONAL PROFILE
Senior full stack developer with 6 years of experience in React, Node.js and cloud architectures.
Focused on building scalable applications and mentoring engineering teams.

TECHNICAL SKILLS
- Frontend: React, Next.js, TypeScript, Redux, Tailwind CSS, Vue.js
- Backend: Node.js, Express, NestJS, Python, Django
- Databases: PostgreSQL, MongoDB, Redis, ElasticSearch
- Cloud and DevOps: AWS, Docker, Kubernetes, Jenkins, GitLab CI
- Architecture: microservices, REST APIs, GraphQL

EXPERIENCE
Lead Developer - TechInnovate (2021-2024)
- Designed and built an e-commerce platform on React and Node.js
- Managed a team of 5 developers
- Migrated the platform to microservices on AWS ECS
- Improved performance by 60 percent and cut hosting costs by 40 percent

Senior Full Stack Developer - DigitalSolutions (2019-2021)
- Built complex web applications with React and Express
- Integrated third-party APIs and designed internal REST APIs
- Introduced automated testing and continuous delivery

EDUCATION
MSc Computer Science - Engineering School (2018)

LANGUAGES
English: fluent, Mandarin: native, French: professional`,
	},
	{
		Name: "Marc Dubois",
		Slug: "marc_dubois",
		Resume: `CV - Marc Dubois

PROFESSIONAL PROFILE
Backend engineer with 8 years of experience in Java and distributed systems.
Comfortable owning services end to end, from design to on-call.

TECHNICAL SKILLS
- Languages: Java, Kotlin, Go, SQL
- Frameworks: Spring Boot, Micronaut, gRPC
- Messaging: Kafka, RabbitMQ
- Databases: PostgreSQL, Oracle, Cassandra
- Operations: Kubernetes, Terraform, Prometheus, Grafana

EXPERIENCE
Staff Backend Engineer - PayFlow (2020-2024)
- Owned the payment authorization service handling 3000 requests per second
- Split a monolith into 12 services with event-driven integration
- Reduced incident count by half through better observability

Backend Developer - BankCore (2016-2020)
- Built batch settlement jobs and reconciliation tooling
- Maintained the core ledger APIs

EDUCATION
Engineering degree in Computer Science - INSA Lyon (2016)

LANGUAGES
French: native, English: fluent`,
	},
	{
		Name: "Emma Rodriguez",
		Slug: "emma_rodriguez",
		Resume: `CV - Emma Rodriguez

PROFESSIONAL PROFILE
Frontend developer with 3 years of experience building accessible, responsive interfaces.
Strong eye for design and close collaboration with product teams.

TECHNICAL SKILLS
- Frontend: React, TypeScript, Angular, HTML5, CSS3, Sass
- Testing: Jest, Cypress, Testing Library
- Design: Figma, design systems, WCAG accessibility
- Tooling: Webpack, Vite, Storybook, Git

EXPERIENCE
Frontend Developer - StudioPixel (2022-2024)
- Built the component library used by four product teams
- Raised the accessibility audit score from 62 to 98
- Ran weekly pairing sessions with junior developers

Junior Web Developer - WebAgency (2021-2022)
- Delivered marketing sites and landing pages for 20 clients

EDUCATION
BSc Web Development - Universidad Politecnica de Madrid (2021)

LANGUAGES
Spanish: native, English: fluent, French: intermediate`,
	},
	{
		Name: "Alex Johnson",
		Slug: "alex_johnson",
		Resume: `CV - Alex Johnson

PROFESSIONAL PROFILE
DevOps and platform engineer with 5 years of experience automating infrastructure.
Cares about reliability, developer experience and cost control.

TECHNICAL SKILLS
- Cloud: AWS, Google Cloud, Azure
- Infrastructure as code: Terraform, Pulumi, Ansible
- Containers: Docker, Kubernetes, Helm, ArgoCD
- Observability: Prometheus, Grafana, Loki, OpenTelemetry
- Scripting: Bash, Python, Go

EXPERIENCE
Platform Engineer - CloudScale (2021-2024)
- Built an internal developer platform used by 150 engineers
- Moved all services to GitOps deployments with ArgoCD
- Lowered monthly cloud spend by 35 percent

Systems Administrator - HostNet (2019-2021)
- Ran Linux fleets and automated provisioning with Ansible

EDUCATION
BSc Information Systems - University of Manchester (2019)

CERTIFICATIONS
AWS Solutions Architect Associate, Certified Kubernetes Administrator`,
	},
	{
		Name: "Dr. Sophie Laurent",
		Slug: "sophie_laurent",
		Resume: `CV - Dr. Sophie Laurent

PROFESSIONAL PROFILE
Machine learning engineer and researcher with a PhD and 7 years of applied experience.
Brings models from research notebooks to production services.

TECHNICAL SKILLS
- Machine learning: PyTorch, TensorFlow, scikit-learn, Hugging Face
- Data: Spark, Airflow, dbt, BigQuery
- MLOps: MLflow, Kubeflow, Docker, model monitoring
- Languages: Python, SQL, Scala

EXPERIENCE
Lead ML Engineer - InsightAI (2020-2024)
- Led a team of 6 building recommendation and ranking models
- Cut model serving latency by 70 percent with distillation
- Published 4 papers on representation learning

Data Scientist - RetailData (2017-2020)
- Built demand forecasting models used across 300 stores

EDUCATION
PhD Machine Learning - Sorbonne University (2017)
MSc Applied Mathematics - Ecole Polytechnique (2013)

LANGUAGES
French: native, English: fluent, German: intermediate`,
	},
	{
		Name: "Thomas Martin",
		Slug: "thomas_martin",
		Resume: `CV - Thomas Martin

PROFESSIONAL PROFILE
Junior full stack developer with 2 years of experience and a strong drive to learn.
Recently completed an intensive bootcamp after a career in retail management.

TECHNICAL SKILLS
- Languages: JavaScript, TypeScript, Python
- Frontend: React, HTML5, CSS3
- Backend: Node.js, Express, FastAPI
- Databases: PostgreSQL, MongoDB
- Tools: Git, Docker, GitHub Actions

EXPERIENCE
Full Stack Developer - LocalStartup (2023-2024)
- Built booking features for a small SaaS product
- Wrote API integration tests and fixed production bugs

Store Manager - ShopCo (2017-2022)
- Led a team of 12 and handled scheduling, budgets and hiring

EDUCATION
Full Stack Web Development Bootcamp - Le Wagon (2022)
BA Business Administration - University of Lille (2016)

LANGUAGES
French: native, English: good`,
	},
}
