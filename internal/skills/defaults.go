package skills

// DefaultSynonyms is the built-in alias table.
// Deployments override or extend it through the synonyms YAML file.
var DefaultSynonyms = map[string][]string{
	".net":                       {".net", "dotnet", "dot net", "vb.net", "asp.net", "asp net", ".net core", ".netcore", ".net framework", "c#", "c sharp", ".net with add ons", "net"},
	"java":                       {"java", "java 8", "java 9", "java 10", "java 11", "java 17", "core java", "spring", "spring boot", "springboot", "hibernate", "j2ee", "j2se", "java with add ons", "jva"},
	"react":                      {"react", "react.js", "reactjs", "react js", "reactjsx", "react-js"},
	"react native":               {"react native", "react-native", "reactnative", "reactnativejs"},
	"node.js":                    {"node.js", "nodejs", "node js", "node"},
	"javascript":                 {"javascript", "js", "ecmascript", "es6", "es7", "es8", "es9", "es10"},
	"python":                     {"python", "python3", "python 3", "django", "flask", "tornado", "pandas", "pyspark", "numpy", "scipy", "dle python"},
	"sql":                        {"sql", "sql server", "ms sql server", "mysql", "postgresql", "postgres", "oracle sql", "oracle plsql", "t-sql", "msbi", "ssis", "ssrs", "msbi/ssis", "sql (google big query)", "etl", "pentaho", "snaplogic", "azure synapse"},
	"dba":                        {"dba", "database administrator"},
	"aws":                        {"aws", "amazon web services", "amazon cloud", "amazon aws"},
	"azure":                      {"azure", "microsoft azure", "azure cloud", "azure solution architect"},
	"gcp":                        {"gcp", "google cloud", "google cloud platform"},
	"cloud ops":                  {"cloud ops", "cloud operations", "aws", "azure", "gcp"},
	"cloud security":             {"cloud security", "aws security", "azure security", "gcp security"},
	"devops":                     {"devops", "dev ops", "ci/cd", "continuous integration", "continuous delivery", "continuous deployment", "jenkins", "azure devops", "gitlab ci", "automation anywhere"},
	"rpa":                        {"rpa", "ui path", "automation anywhere", "power automate"},
	"data engineering":           {"data engineering", "spark", "kafka", "hadoop", "hadoop big data stack", "data engineering stack", "data engineering - spark", "data engineering - kafka"},
	"etl":                        {"etl", "etl testing", "ssis", "ssrs", "pentaho", "etl with add ons", "snaplogic"},
	"data science":               {"data science", "python", "r", "pandas", "numpy", "scipy", "gen ai"},
	"qa automation":              {"qa automation", "qa automation with add ons", "selenium", "cypress"},
	"qa manual":                  {"qa manual", "dle qa manual", "edi testing", "healthrule"},
	"angular":                    {"angular", "angularjs", "angular.js", "angular 2", "angular 4", "angular 5", "angular 6", "ng"},
	"html/css":                   {"html", "css", "html/css"},
	"ux design":                  {"ux design", "user experience design", "user research"},
	"ui design":                  {"ui design", "user interface design"},
	"salesforce commerce cloud":  {"salesforce commerce cloud"},
	"salesforce health cloud":    {"salesforce health cloud"},
	"salesforce service cloud":   {"salesforce service cloud"},
	"salesforce marketing cloud": {"salesforce marketing cloud"},
	"salesforce testing":         {"salesforce testing"},
	"android":                    {"android", "android development", "java android", "kotlin"},
	"ios":                        {"ios", "swift", "swiftui", "objective-c"},
	"project management":         {"project management", "project management(consulting)"},
	"product management":         {"product management", "product management(consulting)"},
	"product owner":              {"product owner"},
	"business analyst":           {"business analyst", "business analyst lead", "lead - business analyst"},
	"senior business analyst":    {"senior business analyst"},
	"senior product designer":    {"senior product designer"},
	"php":                        {"php", "php/laravel", "php/laravel/codeigniter", "cakephp", "php/laravel/codeigniter/cakephp"},
	"sap bo":                     {"sap bo"},
	"intersystems":               {"intersystems", "qnxt", "healthedge", "facets"},
	"ms dynamics":                {"ms dynamics", "ms dynamics with azure"},
	"power bi":                   {"power bi", "powerbi"},
	"spotfire":                   {"spotfire", "tibco spotfire"},
	"azure data factory":         {"azure data factory"},
	"azure databricks":           {"azure databricks"},
	"outsystems":                 {"outsystems", "low code"},
	"jasper reporting":           {"jasper reporting"},
	"performance engineering":    {"performance engineering", "performance testing"},
	"l1 help desk":               {"l1 help desk"},
	"l2 help desk":               {"l2 help desk"},
	"service now":                {"servicenow", "service now"},
	"control-m":                  {"control - m", "control m"},
	"ror":                        {"ror", "ruby on rails"},
	"intern":                     {"intern", "fresher", "developer", "designer", "architect"},
	"prompt engineer":            {"prompt engineer", "gen ai", "ai engineer"},
}
