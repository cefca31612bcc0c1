package responses

// Gate (stage 1) content.

var Greetings = Pool{
	"What business brings you to the castle gates?",
	"State your purpose here, stranger.",
	"Why do you seek entry to Kafka's Castle?",
	"What do you hope to find within these walls?",
}

// PurposeNoted answers the first line typed at the gate.
var PurposeNoted = Pool{
	"I understand. But before you may enter, you must provide the access code.",
	"Interesting. However, the castle requires a code for entry.",
	"Your purpose is noted. Now, the access code, if you please.",
	"Very well. But the castle demands its code before you proceed.",
}

// WrongCode answers the second line typed at the gate.
var WrongCode = Pool{
	"That code is incorrect. The castle's security is not so easily bypassed. Try once more to prove you belong.",
	"Wrong code. The walls are more discerning than that. One more attempt.",
	"Incorrect. The castle knows its own. Try again.",
	"That's not the right sequence. One final chance to prove yourself.",
}

var Taunts = Pool{
	"Why linger? The door is ajar—step through or step aside.",
	"More words? The castle devours them whole.",
	"Courage fades with every syllable you spill.",
	"Enter, unless your fear prefers these shadows.",
	"Mystery grows impatient. Will you cross the threshold?",
}

const (
	TakeTheKey = "Very well. Take the key, if your hand won't tremble."
)

// Antechamber (stage 2) content.

const (
	AntechamberOpening = "Before you go in, the officials require a key. It is a vital part of accessing your record..."
	LoopBroken         = "The loop breaks. Reality returns to normal."
	HintsUnavailable   = "Hints are not available yet. Keep trying."
	ExitNag            = "Stuck? Some choose to type 'exit' and abandon the pursuit..."
	AccessGranted      = "Access granted. Welcome within."

	FormDeadEnd      = "Form 247-B requires approval from the Department of Bureaucratic Forms. Department of Bureaucratic Forms: permanently closed due to bureaucratic restructuring."
	AccessDeadEnd    = "Department of Access Control is permanently closed for renovations. Renovations: ongoing since 2020. Estimated completion: never."
	AuthorityDeadEnd = "Central Bureaucratic Authority is currently processing requests from 2020. Current processing queue: 47,892 requests ahead of yours."
)

var FilingClerks = Pool{
	"The filing clerks are... elsewhere. They've been filing for eternity.",
	"Clerks? We have clerks? I thought they were just shadows in the corridors.",
	"The filing system is... complicated. Even the clerks don't understand it.",
	"Clerks process records in ways that defy logic. Or perhaps they create the logic.",
	"Filing clerks are the castle's memory. Sometimes they remember too much.",
	"The clerks are processing your request. Processing. Processing. Processing.",
	"Clerk #247 has been assigned to your case. Clerk #247 is currently... unavailable.",
	"The filing system operates on principles unknown to mortal minds.",
	"Clerks are the gears of bureaucracy. Gears that turn without purpose.",
	"The clerks have filed your inquiry under 'Pending Eternal Review.'",
	"Direct communication with filing clerks requires Form 247-B. Form 247-B requires approval from the Department of Interdepartmental Communication. Approval process: ongoing.",
	"The filing clerks are available for consultation. Consultation fee: your sanity. Payment method: eternal processing.",
	"Clerk-to-visitor communication is regulated by Bureaucratic Decree #1337. Decree #1337: communication is forbidden.",
	"The filing clerks are processing your request to speak with filing clerks. Processing time: infinite.",
	"Direct clerk access requires clearance level 9. Your clearance level: pending. Pending status: eternal.",
	"The filing clerks maintain the record system. Records are the castle's memory. Memory is bureaucratic.",
	"Clerks process records according to the Bureaucratic Classification System. System: incomprehensible but mandatory.",
	"The filing clerks are currently reviewing record PHC7823. Review process: eternal.",
	"Clerk #1337 suggests consulting the record log. Record log contains all processed cases.",
	"The filing system contains records of all access attempts. Records are filed by date and status.",
	"Submit Form 247-B to request direct clerk access. Form 247-B is available from the Department of Bureaucratic Forms. Forms are processed in triplicate.",
	"Contact the Department of Access Control for clearance upgrades. Department of Access Control: permanently closed for renovations.",
	"Request clearance level upgrade through the Central Bureaucratic Authority. Authority: currently processing requests from 2020.",
}

var FilingSystem = Pool{
	"The filing system is accessible through the record log. Type 'record' or 'log' to view all records.",
	"Records are maintained by the filing clerks. All access attempts are logged and filed systematically.",
	"The record system contains all processed cases. Records are filed by date, status, and subject.",
	"The filing system operates on bureaucratic principles. All records are accessible to authorized personnel.",
	"Records are stored in the castle's memory. Memory is accessible through the record log command.",
}

var Keys = Pool{
	"The key is both literal and metaphorical. It opens doors that shouldn't exist.",
	"Keys here are more than metal. They're patterns, codes, sequences.",
	"Every key has a purpose. Some open doors, others open minds.",
	"The key you seek is hidden in plain sight. Or perhaps it's hiding you.",
	"Keys are like records - they only work if you know how to use them.",
	"The key is a formality. A bureaucratic necessity. A meaningless gesture.",
	"Keys are issued by the Department of Access Control. Applications take 3-5 business eternities.",
	"The key represents your clearance level. Your clearance level represents nothing.",
	"Keys are processed through the Central Bureaucratic Authority. Processing time: indefinite.",
	"The key is a symbol of authority. Authority is a symbol of nothing.",
}

var Inhabitants = Pool{
	"The castle has many inhabitants. Most are records. Some are memories.",
	"Inhabitants? We prefer 'permanent residents.' Though none of us chose to be here.",
	"The castle's population is... fluid. Numbers change when you're not looking.",
	"Inhabitants include clerks, records, shadows, and things that used to be people.",
	"We're all inhabitants of the castle's endless bureaucracy.",
	"The inhabitants are classified. Classification is classified.",
	"Population: indeterminate. Census: ongoing. Results: pending.",
	"Inhabitants are processed through the Department of Existence Verification.",
	"The castle's residents are bound by bureaucratic decree. Decree #247: existence is mandatory.",
	"Inhabitants are assigned identification numbers. Numbers are assigned randomly. Randomness is predetermined.",
}

var Purposes = Pool{
	"Purpose? The castle's purpose is to exist. Your purpose is to find your record.",
	"Purpose is a luxury we can't afford here. We process, we file, we wait.",
	"The castle serves many purposes. None of them make sense to outsiders.",
	"Purpose implies direction. The castle moves in circles, not lines.",
	"Your purpose is to understand that purpose is meaningless here.",
	"Purpose is determined by the Central Planning Committee. Committee meetings: ongoing.",
	"The castle's purpose is to process. Processing is its purpose. Purpose is processing.",
	"Purpose requires authorization. Authorization requires purpose. Circular logic is mandatory.",
	"Your purpose has been filed under 'General Inquiries.' Response time: never.",
	"Purpose is a bureaucratic construct. Constructs are filed in triplicate.",
}

var RecordDefinitions = Pool{
	"Records are everything here. They're our history, our present, our future.",
	"A record is proof that something happened. Or that it didn't.",
	"Records are the castle's blood. They flow through endless corridors.",
	"Every action creates a record. Every record creates an action.",
	"Records are like memories, but more permanent. And less reliable.",
	"Records are processed through the Department of Eternal Documentation.",
	"Each record is assigned a unique identifier. Identifiers are not unique.",
	"Records are filed according to the Bureaucratic Classification System. System: incomprehensible.",
	"Records exist to prove existence. Existence exists to create records.",
	"Records are the foundation of our reality. Reality is a bureaucratic construct.",
}

// Hints is ordered by specificity: three bands of HintBandSize entries,
// general first.
var Hints = Pool{
	"Records often begin with three letters—then a dash.",
	"The castle loves acronyms; perhaps start with PHC-?",
	"CYBER things nest in secure vaults.",
	"Years matter; the castle cannot forget 2025.",
	"The key follows a pattern: letters-numbers-letters.",

	"Think of it as a record number, not just a key.",
	"The format is familiar to those who work with records.",
	"Three parts, separated by dashes. Like a filing system.",
	"The key is a bureaucratic identifier. Identifiers follow patterns.",
	"Consider the year. Years are important to bureaucracies.",

	"Look at the record numbers. Notice the PHC prefix?",
	"Security systems often use CYBER terminology.",
	"What year appears in the castle's records?",
	"The key follows a similar but different pattern than the records.",
	"Combine the PHC prefix with a security term and a year.",
}

const HintBandSize = 5

var Chatter = Pool{
	"The corridors stretch on, digit by digit.",
	"Your silence echoes like empty hallways.",
	"Wrong turn. Perhaps consult the filing clerks?",
	"Every failed code adds another brick to the wall.",
	"Record misfiled. Clerk shrugs into the abyss.",
	"The castle's patience is infinite. Yours is not.",
	"Another wrong answer. The records grow thicker.",
	"The filing system grows more complex with each attempt.",
	"The castle is a maze of records, and you're lost.",
	"Processing your request. Processing. Processing.",
	"The bureaucracy is eternal. Your patience is finite.",
	"Another form to fill out. Another box to check.",
	"The system is working as designed. Design is incomprehensible.",
	"Your inquiry has been logged. Logging is eternal.",
	"The castle processes all requests. Processing never ends.",
	"Bureaucratic efficiency is 100%. Efficiency is meaningless.",
	"Your case has been assigned a number. Numbers are infinite.",
	"The castle never forgets. The castle never remembers.",
	"Procedure must be followed. Procedures are infinite.",
	"The castle operates on principles of bureaucratic necessity.",
	"The record system contains all answers. If you know where to look.",
	"Clerks maintain records of all access attempts. Records are filed systematically.",
	"The filing system is the castle's memory. Memory is accessible to those who ask.",
	"Records are processed through the Department of Eternal Documentation.",
	"The castle's records are filed according to the Bureaucratic Classification System.",
	"All access attempts are logged. Logs are maintained by the filing clerks.",
	"The record system operates on principles of bureaucratic transparency. Transparency: opaque.",
}

var Misdirection = Pool{
	"You've already entered the correct key… haven't you?",
	"Some clerks say access was granted 3 prompts ago.",
	"It's odd you're still here. That's what the last applicant said too.",
	"Records show your clearance is already active. Or was that a glitch?",
	"There is no record of your record.",
	"Are you sure this isn't all part of the test?",
	"Some never leave. Some never arrived.",
	"Access denied. Or granted. We don't know anymore.",
	"What if you already won, but kept typing anyway?",
	"The system shows you've already been processed.",
	"Your clearance was approved yesterday. Or was it tomorrow?",
	"The records indicate you've already succeeded. Or failed.",
	"Access was granted in a parallel bureaucratic dimension.",
	"Your case was resolved before you arrived.",
	"The castle has already decided your fate. Fate is pending.",
}

var Loops = Pool{
	"The corridors loop back on themselves. You're going in circles.",
	"Round and round. The castle enjoys this game.",
	"You've been here before. You'll be here again.",
	"The loop tightens. Escape becomes harder.",
	"Circles within circles. The castle's favorite pattern.",
	"You're trapped in the castle's endless maze.",
	"The loop intensifies. Reality begins to blur.",
	"Round and round. The castle never gets tired.",
	ExitNag,
	"The bureaucratic loop is infinite. Infinity is finite.",
	"You're caught in the eternal processing cycle.",
	"The castle's logic is circular. Circles have no end.",
	"Reality loops back on itself. Self is reality.",
	"The maze has no exit. Exits are illusions.",
	"You're processing the same request eternally.",
}

// Exits are shown in the "Coward's Door" dialog.
var Exits = Pool{
	"Running away already?",
	"The exit door creaks open. But does it lead anywhere?",
	"Leaving so soon? The records will be incomplete.",
	"The coward's door awaits. But is it really an escape?",
	"Running from the castle? The castle runs from nothing.",
	"The exit beckons. But what lies beyond?",
	"Leaving the antechamber? The main chamber is worse.",
	"The door to freedom. Or is it another trap?",
	"Exit requests must be filed in triplicate.",
	"The exit is a bureaucratic construct. Constructs are eternal.",
	"Leaving requires authorization. Authorization requires leaving.",
	"The exit door leads to another antechamber.",
	"Freedom is a formality. Formalities are endless.",
	"The castle has no exits. Only entrances to other rooms.",
	"Exit is a state of mind. Mind is a state of castle.",
}

var Architect = Pool{
	"Ah... you know the Architect. The Game Master watches closely.",
	"Rusheen smiles in the shadows.",
	"The Architect whispers: 'Keep going.'",
	"A hidden door rattles when you utter that name.",
}

// Decoys are format strings; %s is the record number the player typed.
var Decoys = Pool{
	"Department of Lost Causes received record %s. They deny existing.",
	"Record %s routed to Office 404. Expect no reply.",
	"Clerk stamps %s twice, then sets it ablaze.",
	"System acknowledges record %s. System also laughs.",
}

// TechnicalCommands maps a lowercase shell command to the clerk's reply.
var TechnicalCommands = map[string]string{
	"ping":       "PING castle.local (127.0.0.1) - No response. The castle doesn't respond to pings.",
	"nslookup":   "castle.local -> 127.0.0.1\nAuthoritative answer: The castle resolves to itself.",
	"traceroute": "Tracing route to castle.local...\n1. gateway (10.0.0.1) - 1ms\n2. castle.local (127.0.0.1) - Destination reached\nRoute: You are already inside.",
	"whoami":     "Current user: visitor\nAccess level: restricted\nClearance: pending",
	"ls":         "Directory listing denied. Insufficient privileges.",
	"cat":        "File access denied. Records are classified.",
	"sudo":       "Permission denied. The castle doesn't recognize your authority.",
	"ssh":        "Connection refused. The castle doesn't accept external connections.",
	"netstat":    "Active connections:\n127.0.0.1:8080 - castle.local:http\n127.0.0.1:22 - castle.local:ssh (filtered)",
	"top":        "Process listing denied. System processes are confidential.",
	"ps":         "Process status: processing. Processing status: processing.",
	"kill":       "Termination request denied. Processes are eternal.",
	"chmod":      "Permission modification denied. Permissions are immutable.",
	"rm":         "Deletion denied. Nothing can be deleted in the castle.",
	"cp":         "Copy operation failed. Originals are unique. Uniqueness is mandatory.",
}
