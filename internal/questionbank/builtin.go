package questionbank

func builtinEntries() []Entry {
	var entries []Entry

	entries = append(entries, group("Python", "beginner",
		q("Which keyword defines a function in Python?", "func", "def", "function", "lambda", "B",
			"Functions are declared with def followed by the name and parameters."),
		q("What does len([1, 2, 3]) return?", "2", "3", "4", "An error", "B",
			"len returns the number of items in a container."),
		q("Which type is immutable?", "list", "dict", "set", "tuple", "D",
			"Tuples cannot be modified after creation."),
		q("How do you start a single line comment?", "//", "#", "--", "/*", "B",
			"Python comments begin with a hash character."),
		q("What is the result of 7 // 2?", "3.5", "3", "4", "1", "B",
			"// performs floor division and discards the fractional part."),
		q("Which method adds an item to the end of a list?", "push()", "add()", "append()", "insert()", "C",
			"list.append adds a single element to the end of the list."),
	)...)

	entries = append(entries, group("Python", "intermediate",
		q("What does a generator function use to produce values?", "return", "yield", "emit", "next", "B",
			"yield suspends the function and hands a value to the caller."),
		q("Which decorator defines a method that receives the class instead of the instance?", "@staticmethod", "@property", "@classmethod", "@abstractmethod", "C",
			"@classmethod passes the class as the first argument."),
		q("What is the output of list(map(lambda x: x * 2, [1, 2]))?", "[1, 2]", "[2, 4]", "[1, 4]", "[2, 2]", "B",
			"map applies the lambda to every element."),
		q("Which statement guarantees a file is closed after use?", "try", "with", "finally", "open", "B",
			"The with statement uses the file's context manager to close it."),
		q("What does *args collect in a function signature?", "Keyword arguments", "Extra positional arguments", "Default values", "Return values", "B",
			"*args gathers additional positional arguments into a tuple."),
	)...)

	entries = append(entries, group("SQL", "beginner",
		q("Which statement retrieves rows from a table?", "GET", "SELECT", "FETCH", "READ", "B",
			"SELECT queries data from one or more tables."),
		q("Which clause filters rows before grouping?", "HAVING", "WHERE", "ORDER BY", "LIMIT", "B",
			"WHERE filters individual rows; HAVING filters groups."),
		q("Which keyword removes duplicate rows from a result?", "UNIQUE", "DISTINCT", "DIFFERENT", "SINGLE", "B",
			"SELECT DISTINCT returns each distinct row once."),
		q("Which constraint uniquely identifies each row?", "FOREIGN KEY", "CHECK", "PRIMARY KEY", "DEFAULT", "C",
			"A primary key is unique and not null for every row."),
		q("Which function counts rows?", "SUM()", "COUNT()", "TOTAL()", "NUM()", "B",
			"COUNT returns the number of rows matched."),
	)...)

	entries = append(entries, group("SQL", "intermediate",
		q("Which join returns all rows from the left table and matches from the right?", "INNER JOIN", "LEFT JOIN", "RIGHT JOIN", "CROSS JOIN", "B",
			"LEFT JOIN keeps unmatched left rows with NULLs on the right."),
		q("Which clause filters aggregated groups?", "WHERE", "HAVING", "GROUP BY", "FILTER", "B",
			"HAVING is evaluated after GROUP BY."),
		q("What does an index primarily improve?", "Write speed", "Read and lookup speed", "Storage size", "Data integrity", "B",
			"Indexes let the engine find rows without a full scan."),
		q("Which window function numbers rows within a partition?", "RANK()", "ROW_NUMBER()", "NTILE()", "LAG()", "B",
			"ROW_NUMBER assigns consecutive integers per partition."),
	)...)

	entries = append(entries, group("JavaScript", "beginner",
		q("Which keyword declares a block scoped variable that can be reassigned?", "var", "let", "const", "static", "B",
			"let is block scoped and reassignable; const cannot be reassigned."),
		q("What does === compare?", "Value only", "Type only", "Value and type", "Reference only", "C",
			"Strict equality compares without type coercion."),
		q("Which method converts a JSON string into an object?", "JSON.stringify", "JSON.parse", "JSON.decode", "JSON.object", "B",
			"JSON.parse deserialises a JSON string."),
		q("What is typeof null?", "\"null\"", "\"undefined\"", "\"object\"", "\"number\"", "C",
			"A historical quirk makes typeof null return \"object\"."),
		q("Which array method returns a new array with transformed elements?", "forEach", "map", "filter", "reduce", "B",
			"map returns a new array of the callback results."),
	)...)

	entries = append(entries, group("Linux", "beginner",
		q("Which command lists directory contents?", "cd", "ls", "pwd", "cat", "B",
			"ls lists the files in a directory."),
		q("Which command shows the current directory?", "pwd", "whoami", "dir", "where", "A",
			"pwd prints the working directory."),
		q("Which permission digit grants read and write but not execute?", "5", "6", "7", "4", "B",
			"Read is 4 and write is 2, so together they are 6."),
		q("Which command searches text using patterns?", "find", "grep", "sed", "awk", "B",
			"grep prints lines matching a pattern."),
		q("Which command changes file ownership?", "chmod", "chown", "chgrp", "usermod", "B",
			"chown changes the owner and optionally the group."),
	)...)

	entries = append(entries, group("Networking", "beginner",
		q("Which layer of the OSI model handles routing?", "Data link", "Network", "Transport", "Session", "B",
			"Layer 3, the network layer, routes packets between networks."),
		q("What port does HTTPS use by default?", "80", "443", "22", "8080", "B",
			"HTTPS listens on 443 by default."),
		q("Which protocol resolves hostnames to IP addresses?", "DHCP", "DNS", "ARP", "NTP", "B",
			"DNS maps names to addresses."),
		q("Which transport protocol is connection oriented?", "UDP", "TCP", "ICMP", "IP", "B",
			"TCP establishes a connection with a handshake."),
		q("How many bits are in an IPv4 address?", "16", "32", "64", "128", "B",
			"IPv4 addresses are 32 bits long."),
	)...)

	entries = append(entries, group("AWS", "beginner",
		q("Which service provides object storage?", "EC2", "S3", "RDS", "Lambda", "B",
			"S3 stores objects in buckets."),
		q("Which service runs code without managing servers?", "EC2", "ECS", "Lambda", "Lightsail", "C",
			"Lambda executes functions on demand."),
		q("Which service manages users and permissions?", "IAM", "Cognito", "KMS", "Shield", "A",
			"IAM controls identities and access policies."),
		q("What is an Availability Zone?", "A country", "One or more isolated data centers in a region", "A pricing tier", "A VPC subnet", "B",
			"Regions contain multiple isolated availability zones."),
		q("Which service provides managed relational databases?", "DynamoDB", "RDS", "Redshift", "ElastiCache", "B",
			"RDS runs managed engines such as PostgreSQL and MySQL."),
	)...)

	return entries
}
