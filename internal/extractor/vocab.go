package extractor

// skillDataset 预定义技能词表，按词表顺序匹配以保证输出稳定
var skillDataset = []string{
	"HTML", "CSS", "JavaScript", "React", "Angular", "Vue.js", "jQuery",
	"TypeScript", "Bootstrap", "Tailwind CSS", "SASS", "LESS", "Node.js",
	"Express.js", "Next.js", "Nuxt.js", "PHP", "Laravel", "Django", "Flask",
	"Ruby on Rails", "ASP.NET", "Java Spring Boot", "MySQL", "PostgreSQL",
	"MongoDB", "Firebase", "GraphQL", "REST API", "WebSockets", "JSON",
	"AJAX", "Git", "GitHub", "GitLab", "CI/CD", "Docker", "Kubernetes",
	"AWS", "Firebase Hosting", "Netlify", "Vercel", "Webpack", "Babel",
	"SEO", "Progressive Web Apps (PWA)", "Responsive Design", "UI/UX Design",
	"Figma", "Adobe XD", "Wireframing", "Testing", "Jest", "Cypress",
	"Mocha", "Chai", "Web Security", "Authentication", "OAuth", "JWT",
	"Firebase Authentication", "Passport.js", "Session Management",
	"symfony", "design patterns", "clean code",
}

// educationKeywords 教育背景关键词词表
var educationKeywords = []string{
	"Computer Science", "Bachelor’s Degree", "Masters", "bsc",
	"Software Engineering", "vocational training",
	"Information Technology",
	"Web Development",
	"Computer Engineering",
	"Cybersecurity",
	"Data Science",
	"Human-Computer Interaction",
	"Multimedia and Web Design",
	"Digital Media",
	"Network Engineering",
	"Electrical and Computer Engineering",
	"Game Development",
	"Full Stack Web Development Bootcamp",
	"Front-End Development Certification",
	"Back-End Development Certification",
	"Cloud Computing",
	"Artificial Intelligence",
	"Machine Learning",
	"UX/UI Design",
}

// DegreeEquivalents 学位等价映射：key为岗位要求中的专业，value为视作等价的简历专业
var DegreeEquivalents = map[string][]string{
	"Computer Science":     {"Computer Engineering", "Software Engineering", "Information Systems"},
	"Software Engineering": {"Computer Science", "Information Technology"},
	"IT":                   {"Information Technology", "Network Security"},
}
